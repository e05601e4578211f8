package main

import (
	"encoding/json"
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"testing/quick"
	"time"
)

func TestExportToJSON_Shape(t *testing.T) {
	slides := []Slide{
		{ID: 1, Type: SlideTypeTitle, Title: "Orbit", Content: []string{"Rehearse anywhere"}, ImageKeyword: "orbit,launch"},
		{ID: 2, Type: SlideTypeBullets, Title: "Problem", Content: []string{"Founders wing it"}, SpeakerNotes: "pause here"},
	}
	data := ExportToJSON(slides, DefaultTheme(), "Orbit Pitch")

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	for _, key := range []string{"title", "theme", "slides", "exportedAt"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	var exportedAt string
	if err := json.Unmarshal(doc["exportedAt"], &exportedAt); err != nil {
		t.Fatalf("exportedAt: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, exportedAt); err != nil {
		t.Errorf("exportedAt %q is not RFC3339: %v", exportedAt, err)
	}

	var wireSlides []map[string]json.RawMessage
	if err := json.Unmarshal(doc["slides"], &wireSlides); err != nil {
		t.Fatalf("slides: %v", err)
	}
	if len(wireSlides) != 2 {
		t.Fatalf("expected 2 wire slides, got %d", len(wireSlides))
	}
	// Canonical shape carries all six fields even when empty.
	for _, key := range []string{"id", "type", "title", "content", "imageKeyword", "speakerNotes"} {
		if _, ok := wireSlides[1][key]; !ok {
			t.Errorf("wire slide missing key %q", key)
		}
	}
}

func TestExportToJSON_ThemeIsFullBundle(t *testing.T) {
	theme, _ := ThemeByID("coral")
	data := ExportToJSON([]Slide{{ID: 1, Type: SlideTypeTitle, Title: "T"}}, theme, "T")

	var doc struct {
		Theme Theme `json:"theme"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	// The wire theme carries the whole bundle, not just the catalog id.
	if doc.Theme.ID != "coral" {
		t.Errorf("theme id = %q, want coral", doc.Theme.ID)
	}
	if doc.Theme.Primary != theme.Primary || doc.Theme.Background != theme.Background {
		t.Errorf("theme colors = %+v, want %+v", doc.Theme, theme)
	}
	if doc.Theme.HeadingFont == "" || doc.Theme.BodyFont == "" {
		t.Errorf("theme fonts missing: %+v", doc.Theme)
	}
}

func TestExportToJSON_NilContentBecomesEmptyArray(t *testing.T) {
	data := ExportToJSON([]Slide{{ID: 1, Type: SlideTypeTitle, Title: "T", Content: nil}}, DefaultTheme(), "T")
	if strings.Contains(string(data), `"content": null`) {
		t.Error("nil content must serialize as [], not null")
	}

	result, err := ImportDeckJSON(data)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if result.Slides[0].Content == nil {
		t.Error("re-imported content is nil")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	theme, _ := ThemeByID("midnight")
	slides := []Slide{
		{ID: 3, Type: SlideTypeTitle, Title: "Orbit", Content: []string{"Rehearse anywhere"}, ImageKeyword: "orbit"},
		{ID: 7, Type: SlideTypeBigNumber, Title: "Traction", Content: []string{"300%", "growth"}, SpeakerNotes: "lead with this"},
		{ID: 9, Type: SlideTypeQuote, Title: "Praise", Content: []string{"Best pitch this year.", "Jane Doe"}},
	}

	result, err := ImportDeckJSON(ExportToJSON(slides, theme, "Orbit Pitch"))
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}

	if result.DeckTitle != "Orbit Pitch" {
		t.Errorf("DeckTitle = %q", result.DeckTitle)
	}
	if result.Theme == nil || result.Theme.ID != "midnight" {
		t.Errorf("theme lost in round trip: %+v", result.Theme)
	}
	if len(result.Slides) != len(slides) {
		t.Fatalf("slide count %d, want %d", len(result.Slides), len(slides))
	}
	for i, got := range result.Slides {
		want := slides[i]
		if got.Type != want.Type || got.Title != want.Title ||
			!reflect.DeepEqual(got.Content, want.Content) ||
			got.ImageKeyword != want.ImageKeyword || got.SpeakerNotes != want.SpeakerNotes {
			t.Errorf("slide %d mismatch:\n  got:  %+v\n  want: %+v", i, got, want)
		}
		// Ids are renumbered on the way back in, never carried.
		if got.ID != i+1 {
			t.Errorf("slide %d: ID = %d, want %d", i, got.ID, i+1)
		}
	}
}

// randomPrintable produces a random printable ASCII string without leading or
// trailing spaces, matching what the importer's trimming leaves intact.
func randomPrintable(r *rand.Rand, maxLen int) string {
	n := r.Intn(maxLen) + 1
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(r.Intn(94) + 33) // printable ASCII, no space
	}
	return string(buf)
}

func randomExportSlides(r *rand.Rand) []Slide {
	types := []SlideType{SlideTypeTitle, SlideTypeBullets, SlideTypeBigNumber, SlideTypeQuote, SlideTypeImage}
	n := r.Intn(8) + 1
	slides := make([]Slide, n)
	for i := range slides {
		content := make([]string, r.Intn(4))
		for j := range content {
			content[j] = randomPrintable(r, 30)
		}
		slides[i] = Slide{
			ID:      i + 1,
			Type:    types[r.Intn(len(types))],
			Title:   randomPrintable(r, 25),
			Content: content,
		}
		if r.Intn(2) == 1 {
			slides[i].ImageKeyword = randomPrintable(r, 15)
		}
		if r.Intn(2) == 1 {
			slides[i].SpeakerNotes = randomPrintable(r, 40)
		}
	}
	return slides
}

// Feature: deck-interchange, Property 1: export then import reconstructs the deck
//
// For any valid deck, ImportDeckJSON(ExportToJSON(deck)) yields an equivalent
// slide list under {type, title, content, imageKeyword, speakerNotes}.
func TestProperty_ExportImportRoundTrip(t *testing.T) {
	config := &quick.Config{
		MaxCount: 100,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	f := func(seed int64) bool {
		r := rand.New(rand.NewSource(seed))
		original := randomExportSlides(r)

		result, err := ImportDeckJSON(ExportToJSON(original, DefaultTheme(), "Round Trip"))
		if err != nil {
			t.Logf("seed %d: import failed: %v", seed, err)
			return false
		}
		if len(result.Slides) != len(original) {
			t.Logf("seed %d: count %d != %d", seed, len(result.Slides), len(original))
			return false
		}
		for i, got := range result.Slides {
			want := original[i]
			if got.Type != want.Type || got.Title != want.Title ||
				!reflect.DeepEqual(got.Content, normalizeContent(want.Content)) ||
				got.ImageKeyword != want.ImageKeyword || got.SpeakerNotes != want.SpeakerNotes {
				t.Logf("seed %d: slide %d mismatch: got %+v want %+v", seed, i, got, want)
				return false
			}
		}
		return true
	}

	if err := quick.Check(f, config); err != nil {
		t.Errorf("round-trip property failed: %v", err)
	}
}

func normalizeContent(content []string) []string {
	if content == nil {
		return []string{}
	}
	return content
}
