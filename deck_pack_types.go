package main

const (
	// DeckPackFileType is the file-type sentinel every valid pack must carry.
	DeckPackFileType = "PitchDeck_DeckPack"
	// DeckPackFormatVersion is written into new packs; readers accept any 1.x.
	DeckPackFormatVersion = "1.0"
)

// DeckPack is the lossless share container for a complete deck: slides plus
// theme, transition, and the speaker-notes flag. It is serialized as JSON
// inside a ZIP container (.deckpack file).
type DeckPack struct {
	FileType         string           `json:"file_type"`
	FormatVersion    string           `json:"format_version"`
	Metadata         DeckPackMetadata `json:"metadata"`
	Theme            string           `json:"theme"`      // theme catalog id
	Transition       TransitionEffect `json:"transition"`
	ShowSpeakerNotes bool             `json:"show_speaker_notes"`
	Slides           []Slide          `json:"slides"`
}

// DeckPackMetadata is the descriptive block shown in pack lists. It is stored
// unencrypted even when the payload is password protected.
type DeckPackMetadata struct {
	DeckTitle   string `json:"deck_title"`
	Author      string `json:"author"`
	CreatedAt   string `json:"created_at"` // RFC3339 formatted timestamp
	SlideCount  int    `json:"slide_count"`
	Description string `json:"description,omitempty"`
}

// DeckPackInfo is returned when probing a pack file before import, so the
// frontend can show the metadata and prompt for a password when needed.
type DeckPackInfo struct {
	Metadata      DeckPackMetadata `json:"metadata"`
	IsEncrypted   bool             `json:"isEncrypted"`
	NeedsPassword bool             `json:"needsPassword"`
	FilePath      string           `json:"filePath"`
}
