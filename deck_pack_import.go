package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ImportDeckPack opens a .deckpack container and decodes the full deck payload.
// Zip-layer sentinels (ErrPackEncrypted, ErrPackBadPassword, ErrPackInvalid)
// pass through untouched so the caller can prompt for a password or surface
// the right message; structural failures come back as *ImportError.
func ImportDeckPack(path string, password string) (*ImportResult, error) {
	jsonData, err := ReadDeckPackZip(path, password)
	if err != nil {
		return nil, err
	}

	var pack DeckPack
	if err := json.Unmarshal(jsonData, &pack); err != nil {
		return nil, &ImportError{Format: "deckpack", Reason: fmt.Sprintf("parse payload: %v", err)}
	}

	if pack.FileType != DeckPackFileType {
		return nil, &ImportError{Format: "deckpack", Reason: "not a deck pack file"}
	}
	if !strings.HasPrefix(pack.FormatVersion, "1.") {
		return nil, &ImportError{Format: "deckpack", Reason: fmt.Sprintf("unsupported format version %q", pack.FormatVersion)}
	}
	if len(pack.Slides) == 0 {
		return nil, &ImportError{Format: "deckpack", Reason: "pack contains no slides"}
	}

	return packToImportResult(pack), nil
}

// packToImportResult normalizes a decoded pack into a validated import result.
// Unknown enum values are coerced to defaults, ids are reassigned 1..n, and
// transient flags are cleared. Shared by pack import and library load.
func packToImportResult(pack DeckPack) *ImportResult {
	slides := make([]Slide, len(pack.Slides))
	for i, s := range pack.Slides {
		if !IsValidSlideType(s.Type) {
			s.Type = SlideTypeBullets
		}
		if s.Layout == "" || !IsValidSlideLayout(s.Layout) {
			s.Layout = LayoutDefault
		}
		if s.Content == nil {
			s.Content = []string{}
		}
		s.ID = i + 1
		s.IsGeneratingImage = false // transient flag, never restored from disk
		slides[i] = s
	}

	result := &ImportResult{
		Slides:           slides,
		SourceFormat:     "deckpack",
		DeckTitle:        pack.Metadata.DeckTitle,
		ShowSpeakerNotes: &pack.ShowSpeakerNotes,
	}
	if theme, ok := ThemeByID(pack.Theme); ok {
		result.Theme = &theme
	}
	if IsValidTransitionEffect(pack.Transition) {
		result.Transition = pack.Transition
	}
	return result
}

// ProbeDeckPack reads only the pack metadata and encryption state, used to
// show a preview and decide whether to prompt for a password before the full
// import runs.
func ProbeDeckPack(path string) (*DeckPackInfo, error) {
	encrypted, err := IsDeckPackEncrypted(path)
	if err != nil {
		return nil, err
	}

	info := &DeckPackInfo{
		IsEncrypted:   encrypted,
		NeedsPassword: encrypted,
		FilePath:      path,
	}
	if meta, _, err := ReadDeckPackMetadata(path); err == nil {
		info.Metadata = meta
	}
	return info, nil
}
