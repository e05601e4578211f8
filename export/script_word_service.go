package export

import (
	"fmt"
	"strings"
	"time"

	goword "github.com/VantageDataChat/GoWord"
	"github.com/VantageDataChat/GoWord/style"
)

// ScriptWordService writes the rehearsal script as a Word document using
// GoWord (pure Go): per slide, the heading, the script segment it came from,
// and the presenter notes. This is the document a speaker rehearses from.
type ScriptWordService struct{}

// NewScriptWordService creates a new script export service
func NewScriptWordService() *ScriptWordService {
	return &ScriptWordService{}
}

// ExportDeckScript renders the script document and returns the .docx bytes.
func (s *ScriptWordService) ExportDeckScript(doc DeckDocument) ([]byte, error) {
	if len(doc.Slides) == 0 {
		return nil, fmt.Errorf("no slides to export")
	}

	primary := strings.TrimPrefix(doc.Theme.Primary, "#")
	secondary := strings.TrimPrefix(doc.Theme.Secondary, "#")
	accent := strings.TrimPrefix(doc.Theme.Accent, "#")

	d := goword.New()
	d.Properties.Title = doc.Title
	d.Properties.Creator = "PitchDeck"
	d.Properties.Description = fmt.Sprintf("Presenter script for %q", doc.Title)

	sec := d.AddSection()

	title := doc.Title
	if title == "" {
		title = "Pitch Deck"
	}
	sec.AddTitle(title, 1)
	sec.AddText(fmt.Sprintf("%d slides · %s", len(doc.Slides), time.Now().Format("2006-01-02")),
		&style.FontStyle{Size: 10, Color: secondary},
		&style.ParagraphStyle{Alignment: style.AlignCenter})
	sec.AddTextBreak(1)

	for _, slide := range doc.Slides {
		sec.AddTitle(fmt.Sprintf("%d. %s", slide.Number, slide.Title), 2)

		if slide.ScriptSegment != "" {
			sec.AddText(slide.ScriptSegment,
				&style.FontStyle{Size: 11},
				&style.ParagraphStyle{SpaceAfter: 160})
		} else if len(slide.Content) > 0 {
			// No script excerpt survived; fall back to the on-slide content
			for _, item := range slide.Content {
				sec.AddText("• "+item,
					&style.FontStyle{Size: 11},
					&style.ParagraphStyle{Indent: 360})
			}
		}

		if slide.SpeakerNotes != "" {
			sec.AddText("Notes: "+slide.SpeakerNotes,
				&style.FontStyle{Size: 10, Italic: true, Color: accent},
				&style.ParagraphStyle{SpaceAfter: 160})
		}
		sec.AddTextBreak(1)
	}

	sec.AddText("Prepared with PitchDeck",
		&style.FontStyle{Size: 9, Color: primary},
		&style.ParagraphStyle{Alignment: style.AlignCenter})

	out, err := d.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to write Word file: %w", err)
	}
	return out, nil
}
