package main

import (
	"strings"
	"testing"
)

func TestExportToPromptText_Deterministic(t *testing.T) {
	slides := threeSlideDeck()

	a := ExportToPromptText(slides, "Acme Seed", "modern")
	b := ExportToPromptText(slides, "Acme Seed", "modern")
	if a != b {
		t.Error("prompt export is not deterministic for identical input")
	}
}

func TestExportToPromptText_EmbedsSlideProjection(t *testing.T) {
	slides := []Slide{
		{ID: 1, Type: SlideTypeBullets, Title: "Traction", Content: []string{"120 pilots", "4 LOIs"}, ImageKeyword: "growth chart"},
	}

	out := ExportToPromptText(slides, "Acme Seed", "modern")

	for _, want := range []string{
		`"Acme Seed"`,
		`"number": 1`,
		`"type": "bullets"`,
		`"title": "Traction"`,
		`"120 pilots"`,
		`"imageIdea": "growth chart"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("prompt missing %s\n%s", want, out)
		}
	}
}

func TestExportToPromptText_TruncatesNotes(t *testing.T) {
	long := strings.Repeat("x", 500)
	slides := []Slide{{ID: 1, Type: SlideTypeTitle, Title: "Intro", Content: []string{}, SpeakerNotes: long}}

	out := ExportToPromptText(slides, "Deck", "modern")
	if strings.Contains(out, long) {
		t.Error("full 500-rune notes embedded verbatim, expected truncation")
	}
	if !strings.Contains(out, "…") {
		t.Error("truncated notes missing ellipsis marker")
	}
}

func TestExportToPromptText_StyleSelectsBrief(t *testing.T) {
	slides := threeSlideDeck()

	bold := ExportToPromptText(slides, "Deck", "bold")
	if !strings.Contains(bold, "bold and high-contrast") {
		t.Error("bold style brief not applied")
	}

	// Unknown style falls back to the default brief
	unknown := ExportToPromptText(slides, "Deck", "vaporwave")
	if !strings.Contains(unknown, "modern and clean") {
		t.Error("unknown style did not fall back to the default brief")
	}
}

func TestExportToPromptText_EmptyTitleGetsPlaceholder(t *testing.T) {
	out := ExportToPromptText(threeSlideDeck(), "  ", "modern")
	if !strings.Contains(out, "Untitled pitch") {
		t.Error("blank project title not replaced with placeholder")
	}
}

func TestPromptStyles_AllHaveBriefs(t *testing.T) {
	for _, s := range PromptStyles() {
		if _, ok := designBriefs[s]; !ok {
			t.Errorf("style %q has no design brief", s)
		}
	}
}
