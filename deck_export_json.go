package main

import (
	"encoding/json"
	"time"
)

// deckExportSlide is the canonical per-slide projection written by ExportToJSON.
// Layout and script segment are deliberately excluded; this shape is the
// interchange contract for foreign tools, not the internal lossless one.
type deckExportSlide struct {
	ID           int       `json:"id"`
	Type         SlideType `json:"type"`
	Title        string    `json:"title"`
	Content      []string  `json:"content"`
	ImageKeyword string    `json:"imageKeyword"`
	SpeakerNotes string    `json:"speakerNotes"`
}

type deckExportDoc struct {
	Title      string            `json:"title"`
	Theme      Theme             `json:"theme"`
	Slides     []deckExportSlide `json:"slides"`
	ExportedAt string            `json:"exportedAt"`
}

// ExportToJSON renders the deck in the canonical interchange shape. The theme
// is written as its full color/font bundle so foreign tools can render without
// our catalog. Feeding the returned bytes back through ImportDeckJSON
// reconstructs an equivalent slide list; ids may be renumbered on the way back in.
func ExportToJSON(slides []Slide, theme Theme, projectTitle string) []byte {
	doc := deckExportDoc{
		Title:      projectTitle,
		Theme:      theme,
		Slides:     make([]deckExportSlide, 0, len(slides)),
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, s := range slides {
		content := s.Content
		if content == nil {
			content = []string{}
		}
		doc.Slides = append(doc.Slides, deckExportSlide{
			ID:           s.ID,
			Type:         s.Type,
			Title:        s.Title,
			Content:      content,
			ImageKeyword: s.ImageKeyword,
			SpeakerNotes: s.SpeakerNotes,
		})
	}
	data, _ := json.MarshalIndent(doc, "", "  ")
	return data
}
