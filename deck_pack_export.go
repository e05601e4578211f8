package main

import (
	"encoding/json"
	"fmt"
	"time"
)

// BuildDeckPack assembles the lossless share payload for a deck. Transient
// per-slide state is stripped; everything else survives a pack round trip.
func BuildDeckPack(slides []Slide, theme Theme, transition TransitionEffect, showSpeakerNotes bool, projectTitle string, author string) DeckPack {
	packSlides := make([]Slide, len(slides))
	copy(packSlides, slides)
	for i := range packSlides {
		packSlides[i].IsGeneratingImage = false
		if packSlides[i].Content == nil {
			packSlides[i].Content = []string{}
		}
	}

	return DeckPack{
		FileType:      DeckPackFileType,
		FormatVersion: DeckPackFormatVersion,
		Metadata: DeckPackMetadata{
			DeckTitle:  projectTitle,
			Author:     author,
			CreatedAt:  time.Now().Format(time.RFC3339),
			SlideCount: len(packSlides),
		},
		Theme:            theme.ID,
		Transition:       transition,
		ShowSpeakerNotes: showSpeakerNotes,
		Slides:           packSlides,
	}
}

// ExportDeckPack marshals the pack and writes the zip container at path,
// encrypting the payload when password is non-empty.
func ExportDeckPack(pack DeckPack, path string, password string) error {
	jsonData, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal deck pack: %w", err)
	}
	return WriteDeckPackZip(jsonData, path, password)
}
