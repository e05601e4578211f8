package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
)

// PPTDeckService renders a deck as a native .pptx using GoPPT (pure Go).
type PPTDeckService struct{}

// NewPPTDeckService creates a new PPT deck service
func NewPPTDeckService() *PPTDeckService {
	return &PPTDeckService{}
}

// Slide geometry, 16:9 widescreen (EMU)
const (
	emuPerInch = 914400

	pptMarginLeft  = int64(0.5 * emuPerInch)
	pptSlideWidth  = int64(10.0 * emuPerInch)
	pptSlideHeight = int64(5.625 * emuPerInch)
	pptBodyWidth   = int64(9.0 * emuPerInch)

	pptFontDisplay = 40
	pptFontTitle   = 30
	pptFontBody    = 16
	pptFontNotes   = 11
	pptFontFigure  = 54
)

// themeARGB converts a "#RRGGBB" theme color to GoPPT's opaque ARGB form.
func themeARGB(hex string) string {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		h = "1E293B"
	}
	return "FF" + strings.ToUpper(h)
}

// helper: create a solid fill from a theme hex color
func themeFill(hex string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(themeARGB(hex)))
}

// helper: set paragraph alignment to center
func centerParagraph(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

// ExportDeckToPPT renders the deck and returns the .pptx bytes.
func (s *PPTDeckService) ExportDeckToPPT(doc DeckDocument) ([]byte, error) {
	if len(doc.Slides) == 0 {
		return nil, fmt.Errorf("no slides to export")
	}

	p := ppt.New()
	p.GetDocumentProperties().Title = doc.Title
	p.GetDocumentProperties().Creator = "PitchDeck"

	for i, slide := range doc.Slides {
		var target *ppt.Slide
		if i == 0 {
			target = p.GetActiveSlide()
		} else {
			target = p.CreateSlide()
		}
		s.renderSlide(target, doc.Theme, slide)
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("failed to create PPT writer: %w", err)
	}
	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to save PPT: %w", err)
	}
	return buf.Bytes(), nil
}

// renderSlide paints one deck slide onto a PPT slide, themed background and
// accent bar included.
func (s *PPTDeckService) renderSlide(slide *ppt.Slide, theme DeckTheme, ds DeckSlide) {
	// Full-bleed background in the theme canvas color
	bg := slide.CreateRichTextShape()
	bg.SetOffsetX(0).SetOffsetY(0)
	bg.SetWidth(pptSlideWidth).SetHeight(pptSlideHeight)
	bg.SetFill(themeFill(theme.Background))

	// Accent bar along the top
	bar := slide.CreateRichTextShape()
	bar.SetOffsetX(0).SetOffsetY(0)
	bar.SetWidth(pptSlideWidth).SetHeight(int64(0.1 * emuPerInch))
	bar.SetFill(themeFill(theme.Accent))

	switch ds.Type {
	case "title":
		s.renderTitle(slide, theme, ds)
	case "big_number":
		s.renderBigNumber(slide, theme, ds)
	case "quote":
		s.renderQuote(slide, theme, ds)
	case "image":
		s.renderImage(slide, theme, ds)
	default:
		s.renderBullets(slide, theme, ds)
	}

	if ds.SpeakerNotes != "" {
		notes := slide.CreateRichTextShape()
		notes.SetOffsetX(pptMarginLeft).SetOffsetY(int64(5.15 * emuPerInch))
		notes.SetWidth(pptBodyWidth).SetHeight(int64(0.35 * emuPerInch))
		tr := notes.CreateTextRun(ds.SpeakerNotes)
		tr.GetFont().SetSize(pptFontNotes).SetColor(ppt.NewColor(themeARGB(theme.Secondary)))
	}
}

func (s *PPTDeckService) renderTitle(slide *ppt.Slide, theme DeckTheme, ds DeckSlide) {
	title := slide.CreateRichTextShape()
	title.SetOffsetX(pptMarginLeft).SetOffsetY(int64(1.9 * emuPerInch))
	title.SetWidth(pptBodyWidth).SetHeight(int64(1.2 * emuPerInch))
	tr := title.CreateTextRun(ds.Title)
	tr.GetFont().SetSize(pptFontDisplay).SetBold(true).SetColor(ppt.NewColor(themeARGB(theme.Primary)))
	centerParagraph(title.GetActiveParagraph())

	if len(ds.Content) > 0 {
		sub := slide.CreateRichTextShape()
		sub.SetOffsetX(pptMarginLeft).SetOffsetY(int64(3.3 * emuPerInch))
		sub.SetWidth(pptBodyWidth).SetHeight(int64(0.8 * emuPerInch))
		str := sub.CreateTextRun(ds.Content[0])
		str.GetFont().SetSize(20).SetColor(ppt.NewColor(themeARGB(theme.Secondary)))
		centerParagraph(sub.GetActiveParagraph())
	}
}

func (s *PPTDeckService) renderBullets(slide *ppt.Slide, theme DeckTheme, ds DeckSlide) {
	s.addHeading(slide, theme, ds.Title)

	body := slide.CreateRichTextShape()
	body.SetOffsetX(pptMarginLeft).SetOffsetY(int64(1.3 * emuPerInch))
	body.SetWidth(pptBodyWidth).SetHeight(int64(3.7 * emuPerInch))
	for i, item := range ds.Content {
		if i > 0 {
			body.CreateParagraph()
		}
		tr := body.CreateTextRun("• " + item)
		tr.GetFont().SetSize(pptFontBody).SetColor(ppt.NewColor(themeARGB(theme.Text)))
	}
}

func (s *PPTDeckService) renderBigNumber(slide *ppt.Slide, theme DeckTheme, ds DeckSlide) {
	s.addHeading(slide, theme, ds.Title)

	figure := ""
	if len(ds.Content) > 0 {
		figure = ds.Content[0]
	}
	fig := slide.CreateRichTextShape()
	fig.SetOffsetX(pptMarginLeft).SetOffsetY(int64(1.9 * emuPerInch))
	fig.SetWidth(pptBodyWidth).SetHeight(int64(1.4 * emuPerInch))
	tr := fig.CreateTextRun(figure)
	tr.GetFont().SetSize(pptFontFigure).SetBold(true).SetColor(ppt.NewColor(themeARGB(theme.Accent)))
	centerParagraph(fig.GetActiveParagraph())

	if len(ds.Content) > 1 {
		sup := slide.CreateRichTextShape()
		sup.SetOffsetX(pptMarginLeft).SetOffsetY(int64(3.5 * emuPerInch))
		sup.SetWidth(pptBodyWidth).SetHeight(int64(0.7 * emuPerInch))
		str := sup.CreateTextRun(ds.Content[1])
		str.GetFont().SetSize(pptFontBody).SetColor(ppt.NewColor(themeARGB(theme.Secondary)))
		centerParagraph(sup.GetActiveParagraph())
	}
}

func (s *PPTDeckService) renderQuote(slide *ppt.Slide, theme DeckTheme, ds DeckSlide) {
	quote := ""
	if len(ds.Content) > 0 {
		quote = ds.Content[0]
	}
	q := slide.CreateRichTextShape()
	q.SetOffsetX(int64(1.0 * emuPerInch)).SetOffsetY(int64(1.8 * emuPerInch))
	q.SetWidth(int64(8.0 * emuPerInch)).SetHeight(int64(1.6 * emuPerInch))
	tr := q.CreateTextRun("“" + quote + "”")
	tr.GetFont().SetSize(28).SetColor(ppt.NewColor(themeARGB(theme.Primary)))
	centerParagraph(q.GetActiveParagraph())

	if len(ds.Content) > 1 {
		attr := slide.CreateRichTextShape()
		attr.SetOffsetX(int64(1.0 * emuPerInch)).SetOffsetY(int64(3.6 * emuPerInch))
		attr.SetWidth(int64(8.0 * emuPerInch)).SetHeight(int64(0.5 * emuPerInch))
		atr := attr.CreateTextRun("— " + ds.Content[1])
		atr.GetFont().SetSize(pptFontBody).SetColor(ppt.NewColor(themeARGB(theme.Secondary)))
		centerParagraph(attr.GetActiveParagraph())
	}
}

func (s *PPTDeckService) renderImage(slide *ppt.Slide, theme DeckTheme, ds DeckSlide) {
	s.addHeading(slide, theme, ds.Title)

	imgBytes, mimeType, ok := decodeDataURL(ds.ImageDataURL)
	if ok {
		img := slide.CreateDrawingShape()
		img.SetImageData(imgBytes, mimeType)
		img.SetOffsetX(int64(1.25 * emuPerInch)).SetOffsetY(int64(1.3 * emuPerInch))
		img.SetWidth(int64(7.5 * emuPerInch)).SetHeight(int64(3.5 * emuPerInch))
	} else if ds.ImageKeyword != "" {
		// No cached image; keep the keyword as a themed placeholder card
		ph := slide.CreateRichTextShape()
		ph.SetOffsetX(int64(1.25 * emuPerInch)).SetOffsetY(int64(2.2 * emuPerInch))
		ph.SetWidth(int64(7.5 * emuPerInch)).SetHeight(int64(1.2 * emuPerInch))
		ph.SetFill(themeFill(theme.Secondary))
		tr := ph.CreateTextRun(ds.ImageKeyword)
		tr.GetFont().SetSize(20).SetColor(ppt.NewColor(themeARGB(theme.Background)))
		centerParagraph(ph.GetActiveParagraph())
	}
}

// addHeading adds the shared content-slide heading
func (s *PPTDeckService) addHeading(slide *ppt.Slide, theme DeckTheme, title string) {
	h := slide.CreateRichTextShape()
	h.SetOffsetX(pptMarginLeft).SetOffsetY(int64(0.35 * emuPerInch))
	h.SetWidth(pptBodyWidth).SetHeight(int64(0.8 * emuPerInch))
	tr := h.CreateTextRun(title)
	tr.GetFont().SetSize(pptFontTitle).SetBold(true).SetColor(ppt.NewColor(themeARGB(theme.Primary)))
}

// decodeDataURL splits a data: URL into raw bytes and MIME type.
func decodeDataURL(dataURL string) ([]byte, string, bool) {
	if !strings.HasPrefix(dataURL, "data:image") {
		return nil, "", false
	}
	parts := strings.SplitN(dataURL, ",", 2)
	if len(parts) != 2 {
		return nil, "", false
	}
	mimeType := "image/png"
	if strings.Contains(parts[0], "image/jpeg") {
		mimeType = "image/jpeg"
	} else if strings.Contains(parts[0], "image/gif") {
		mimeType = "image/gif"
	}
	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, "", false
	}
	return raw, mimeType, true
}
