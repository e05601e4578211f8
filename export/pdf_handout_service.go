package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// DeckDocument is the export-facing projection of a deck: everything the
// writers need, nothing tied to the live store types.
type DeckDocument struct {
	Title  string
	Author string
	Theme  DeckTheme
	Slides []DeckSlide
}

// DeckTheme carries the theme palette as "#RRGGBB" hex strings plus fonts.
type DeckTheme struct {
	Name        string
	Primary     string
	Secondary   string
	Background  string
	Text        string
	Accent      string
	HeadingFont string
	BodyFont    string
}

// DeckSlide is one slide flattened for document output. Number is the
// 1-based position in the deck.
type DeckSlide struct {
	Number        int
	Type          string // title, bullets, big_number, quote, image
	Layout        string
	Title         string
	Content       []string
	SpeakerNotes  string
	ScriptSegment string
	ImageKeyword  string
	ImageDataURL  string // data: URL of the resolved slide image, when cached
}

// hexToColor parses a "#RRGGBB" theme color into maroto's RGB form.
// Malformed values come back as near-black so a bad theme never fails an export.
func hexToColor(hex string) *props.Color {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		return &props.Color{Red: 30, Green: 41, Blue: 59}
	}
	r, err1 := strconv.ParseUint(h[0:2], 16, 8)
	g, err2 := strconv.ParseUint(h[2:4], 16, 8)
	b, err3 := strconv.ParseUint(h[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return &props.Color{Red: 30, Green: 41, Blue: 59}
	}
	return &props.Color{Red: int(r), Green: int(g), Blue: int(b)}
}

// PDFHandoutService renders a deck as a printable handout using maroto:
// one titled section per slide with its content and presenter notes.
type PDFHandoutService struct{}

// NewPDFHandoutService creates a new PDF handout service
func NewPDFHandoutService() *PDFHandoutService {
	return &PDFHandoutService{}
}

// ExportDeckToPDF renders the deck handout and returns the PDF bytes.
func (s *PDFHandoutService) ExportDeckToPDF(doc DeckDocument) ([]byte, error) {
	if len(doc.Slides) == 0 {
		return nil, fmt.Errorf("no slides to export")
	}

	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithDefaultFont(&props.Font{
			Family: fontfamily.Helvetica,
			Size:   10,
		}).
		Build()

	m := maroto.New(cfg)

	s.addCover(m, doc)
	for _, slide := range doc.Slides {
		s.addSlideSection(m, doc.Theme, slide)
	}
	s.addFooter(m, doc)

	document, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return document.GetBytes(), nil
}

// addCover adds the handout cover block
func (s *PDFHandoutService) addCover(m core.Maroto, doc DeckDocument) {
	title := doc.Title
	if title == "" {
		title = "Pitch Deck"
	}
	m.AddRow(20,
		col.New(12).Add(
			text.New(title, props.Text{
				Size:  20,
				Style: fontstyle.Bold,
				Align: align.Center,
				Color: hexToColor(doc.Theme.Primary),
			}),
		),
	)
	m.AddRow(8,
		col.New(12).Add(
			text.New(fmt.Sprintf("%d slides · %s theme · %s", len(doc.Slides), doc.Theme.Name, time.Now().Format("2006-01-02")), props.Text{
				Size:  9,
				Align: align.Center,
				Color: hexToColor(doc.Theme.Secondary),
			}),
		),
	)
	m.AddRow(6)
}

// addSlideSection adds one slide as a handout section
func (s *PDFHandoutService) addSlideSection(m core.Maroto, theme DeckTheme, slide DeckSlide) {
	m.AddRow(4, col.New(12).Add(line.New(props.Line{Color: hexToColor(theme.Secondary), Thickness: 0.3})))

	heading := fmt.Sprintf("%d. %s", slide.Number, slide.Title)
	m.AddRow(10,
		col.New(12).Add(
			text.New(heading, props.Text{
				Size:  13,
				Style: fontstyle.Bold,
				Color: hexToColor(theme.Primary),
			}),
		),
	)

	switch slide.Type {
	case "big_number":
		if len(slide.Content) > 0 {
			m.AddRow(12,
				col.New(12).Add(
					text.New(slide.Content[0], props.Text{
						Size:  22,
						Style: fontstyle.Bold,
						Align: align.Center,
						Color: hexToColor(theme.Accent),
					}),
				),
			)
		}
		for _, ln := range rest(slide.Content) {
			s.addBodyLine(m, theme, ln)
		}
	case "quote":
		if len(slide.Content) > 0 {
			m.AddRow(10,
				col.New(12).Add(
					text.New("\""+slide.Content[0]+"\"", props.Text{
						Size:  12,
						Style: fontstyle.Italic,
						Align: align.Center,
						Color: hexToColor(theme.Text),
					}),
				),
			)
		}
		for _, ln := range rest(slide.Content) {
			s.addBodyLine(m, theme, ln)
		}
	case "image":
		if slide.ImageKeyword != "" {
			s.addBodyLine(m, theme, "[image: "+slide.ImageKeyword+"]")
		}
		for _, ln := range slide.Content {
			s.addBodyLine(m, theme, ln)
		}
	default:
		for _, ln := range slide.Content {
			s.addBodyLine(m, theme, "•  "+ln)
		}
	}

	if slide.SpeakerNotes != "" {
		m.AddRow(7,
			col.New(12).Add(
				text.New("Notes: "+slide.SpeakerNotes, props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Color: hexToColor(theme.Secondary),
				}),
			),
		)
	}
	m.AddRow(3)
}

func (s *PDFHandoutService) addBodyLine(m core.Maroto, theme DeckTheme, line string) {
	m.AddRow(6,
		col.New(12).Add(
			text.New(line, props.Text{
				Size:  10,
				Color: hexToColor(theme.Text),
			}),
		),
	)
}

// addFooter adds the closing line
func (s *PDFHandoutService) addFooter(m core.Maroto, doc DeckDocument) {
	m.AddRow(6)
	author := doc.Author
	if author == "" {
		author = "PitchDeck"
	}
	m.AddRow(6,
		col.New(12).Add(
			text.New("Prepared with "+author, props.Text{
				Size:  8,
				Align: align.Center,
				Color: hexToColor(doc.Theme.Secondary),
			}),
		),
	)
}

// rest returns everything after the first element
func rest(items []string) []string {
	if len(items) <= 1 {
		return nil
	}
	return items[1:]
}
