package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ImportError describes why a deck file could not be imported. Format names the
// source format that was attempted ("json", "pptx", "deckpack", or the raw
// extension for unrecognized files).
type ImportError struct {
	Format string
	Reason string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("cannot import %s deck: %s", e.Format, e.Reason)
}

// ImportResult is a fully validated deck parsed from an external file. The
// store is only touched after one of these exists; a failed import never
// produces a partial result.
type ImportResult struct {
	Slides           []Slide
	Theme            *Theme           // nil when the source format carries no theme
	Transition       TransitionEffect // empty when the source format carries no transition
	ShowSpeakerNotes *bool            // nil when the source format carries no notes flag
	SourceFormat     string           // "json", "pptx" or "deckpack"
	DeckTitle        string           // empty when the source carries no title
}

// ImportDeckFromFile parses the deck file at path, dispatching on the file
// extension. Encrypted deck packs return ErrPackEncrypted so the caller can
// prompt for a password and retry via ImportDeckPack.
func ImportDeckFromFile(path string) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ImportError{Format: "json", Reason: fmt.Sprintf("read file: %v", err)}
		}
		return ImportDeckJSON(data)
	case ".pptx":
		return ImportDeckPPTX(path)
	case ".deckpack":
		return ImportDeckPack(path, "")
	default:
		return nil, &ImportError{Format: strings.TrimPrefix(ext, "."), Reason: "unsupported file type, expected .json, .pptx or .deckpack"}
	}
}

// deckImportSlide is the forgiving wire shape accepted from foreign JSON.
// Unknown enum values are coerced to defaults rather than rejected, since
// hand-edited or third-party files are expected here.
type deckImportSlide struct {
	Type          string   `json:"type"`
	Layout        string   `json:"layout"`
	Title         string   `json:"title"`
	Content       []string `json:"content"`
	ScriptSegment string   `json:"scriptSegment"`
	SpeakerNotes  string   `json:"speakerNotes"`
	ImageKeyword  string   `json:"imageKeyword"`
}

// ImportDeckJSON parses deck JSON. The document must carry a "slides" array;
// a missing or non-array slides key is a structural failure and returns an
// *ImportError without any partial result.
func ImportDeckJSON(data []byte) (*ImportResult, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ImportError{Format: "json", Reason: fmt.Sprintf("not a JSON object: %v", err)}
	}

	rawSlides, ok := doc["slides"]
	if !ok {
		return nil, &ImportError{Format: "json", Reason: `missing "slides" array`}
	}

	var wireSlides []deckImportSlide
	if err := json.Unmarshal(rawSlides, &wireSlides); err != nil {
		return nil, &ImportError{Format: "json", Reason: `"slides" is not an array of slide objects`}
	}
	if len(wireSlides) == 0 {
		return nil, &ImportError{Format: "json", Reason: "file contains no slides"}
	}

	result := &ImportResult{
		Slides:       coerceImportedSlides(wireSlides),
		SourceFormat: "json",
	}

	var title string
	if raw, ok := doc["title"]; ok && json.Unmarshal(raw, &title) == nil {
		result.DeckTitle = strings.TrimSpace(title)
	}

	if raw, ok := doc["theme"]; ok {
		if theme, ok := resolveImportedTheme(raw); ok {
			result.Theme = &theme
		}
	}

	return result, nil
}

// resolveImportedTheme maps a wire theme back onto the catalog. Current
// exports write the full theme object; older files carried a bare id string.
// Either way only the id is trusted, so hand-edited colors cannot smuggle an
// off-catalog theme in. Unknown ids leave the deck on its current theme.
func resolveImportedTheme(raw json.RawMessage) (Theme, bool) {
	var themeID string
	if err := json.Unmarshal(raw, &themeID); err != nil {
		var obj struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return Theme{}, false
		}
		themeID = obj.ID
	}
	return ThemeByID(themeID)
}

// coerceImportedSlides converts wire slides into store slides. Foreign ids are
// discarded and replaced with fresh sequential ones so imported decks can never
// collide with ids handed out later. Unknown types and layouts fall back to
// bullets/default.
func coerceImportedSlides(wire []deckImportSlide) []Slide {
	slides := make([]Slide, 0, len(wire))
	for i, ws := range wire {
		slideType := SlideType(strings.TrimSpace(ws.Type))
		if !IsValidSlideType(slideType) {
			slideType = SlideTypeBullets
		}
		layout := SlideLayout(strings.TrimSpace(ws.Layout))
		if layout == "" || !IsValidSlideLayout(layout) {
			layout = LayoutDefault
		}
		content := ws.Content
		if content == nil {
			content = []string{}
		}
		slides = append(slides, Slide{
			ID:            i + 1,
			Type:          slideType,
			Layout:        layout,
			Title:         strings.TrimSpace(ws.Title),
			Content:       content,
			ScriptSegment: ws.ScriptSegment,
			SpeakerNotes:  strings.TrimSpace(ws.SpeakerNotes),
			ImageKeyword:  strings.TrimSpace(ws.ImageKeyword),
		})
	}
	return slides
}
