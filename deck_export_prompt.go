package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// promptNotesMaxLen caps speaker notes in the prompt projection so one
// verbose slide cannot dominate the brief.
const promptNotesMaxLen = 160

// promptSlideProjection is the slimmed slide shape embedded in the design brief.
type promptSlideProjection struct {
	Number    int      `json:"number"`
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	Bullets   []string `json:"bullets,omitempty"`
	ImageIdea string   `json:"imageIdea,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// designBriefs maps prompt style names to the fixed design direction appended
// to the brief. Unknown styles fall back to "modern".
var designBriefs = map[string]string{
	"modern": "Design direction: modern and clean. Generous whitespace, a restrained two-color palette, " +
		"large sans-serif headings, one idea per slide. Avoid decorative clip art.",
	"bold": "Design direction: bold and high-contrast. Oversized display type, full-bleed color blocks, " +
		"short punchy statements, dramatic single-figure slides.",
	"corporate": "Design direction: corporate and trustworthy. Conservative palette, consistent grid, " +
		"clear hierarchy, data-forward layouts with room for charts.",
	"playful": "Design direction: playful and warm. Rounded shapes, friendly illustration-style imagery, " +
		"bright accent colors used sparingly against soft backgrounds.",
}

// DefaultPromptStyle is used when no style is selected.
const DefaultPromptStyle = "modern"

// PromptStyles lists the selectable design brief styles in display order.
func PromptStyles() []string {
	return []string{"modern", "bold", "corporate", "playful"}
}

// ExportToPromptText renders the deck as a natural-language design brief for
// an external slide-design tool: intro, a JSON projection of the slides, and
// a fixed style direction. Pure templating, deterministic for a given input.
func ExportToPromptText(slides []Slide, projectTitle string, style string) string {
	title := strings.TrimSpace(projectTitle)
	if title == "" {
		title = "Untitled pitch"
	}

	projections := make([]promptSlideProjection, 0, len(slides))
	for i, s := range slides {
		p := promptSlideProjection{
			Number:    i + 1,
			Type:      string(s.Type),
			Title:     s.Title,
			ImageIdea: s.ImageKeyword,
			Notes:     truncateRunes(s.SpeakerNotes, promptNotesMaxLen),
		}
		if len(s.Content) > 0 {
			p.Bullets = s.Content
		}
		projections = append(projections, p)
	}

	payload, err := json.MarshalIndent(projections, "", "  ")
	if err != nil {
		// Slide projections are plain strings and ints; this cannot fail in practice
		payload = []byte("[]")
	}

	brief, ok := designBriefs[style]
	if !ok {
		brief = designBriefs[DefaultPromptStyle]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a %d-slide presentation titled %q.\n\n", len(slides), title)
	b.WriteString("Build one slide per entry below, keeping the given order, titles and bullet text verbatim. ")
	b.WriteString("Use \"imageIdea\" as the subject for any imagery and \"notes\" only as design context, never as on-slide text.\n\n")
	b.WriteString("Slides:\n")
	b.Write(payload)
	b.WriteString("\n\n")
	b.WriteString(brief)
	b.WriteString("\n")
	return b.String()
}

// truncateRunes shortens a string to at most max runes, appending an ellipsis
// when anything was cut.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
