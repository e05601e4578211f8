package main

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// pptxSlideEntryRe matches slide part names inside a .pptx archive. Zip entry
// names always use forward slashes.
var pptxSlideEntryRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// The OOXML slide markup is matched by local element name only, which keeps
// the decoder independent of the p:/a: namespace prefixes a writer chose.
type pptxSlideDoc struct {
	Shapes []pptxShape `xml:"cSld>spTree>sp"`
}

type pptxShape struct {
	Placeholder *pptxPlaceholder `xml:"nvSpPr>nvPr>ph"`
	Paragraphs  []pptxParagraph  `xml:"txBody>p"`
}

type pptxPlaceholder struct {
	Type string `xml:"type,attr"`
}

type pptxParagraph struct {
	Runs []string `xml:"r>t"`
}

func (p pptxParagraph) text() string {
	return strings.TrimSpace(strings.Join(p.Runs, ""))
}

func (s pptxShape) isTitle() bool {
	if s.Placeholder == nil {
		return false
	}
	return s.Placeholder.Type == "title" || s.Placeholder.Type == "ctrTitle"
}

// ImportDeckPPTX extracts per-page title and body text from a PowerPoint file
// and maps each page to a slide. The first page becomes the title slide, later
// pages become bullet slides; all formatting beyond text is discarded.
func ImportDeckPPTX(path string) (*ImportResult, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ImportError{Format: "pptx", Reason: fmt.Sprintf("open archive: %v", err)}
	}
	defer zr.Close()

	type slidePart struct {
		num  int
		file *zip.File
	}
	var parts []slidePart
	for _, f := range zr.File {
		m := pptxSlideEntryRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		parts = append(parts, slidePart{num: num, file: f})
	}
	if len(parts) == 0 {
		return nil, &ImportError{Format: "pptx", Reason: "no slides found in archive"}
	}

	// slide10.xml must sort after slide2.xml, so order by the numeric suffix.
	sort.Slice(parts, func(i, j int) bool { return parts[i].num < parts[j].num })

	var slides []Slide
	for _, part := range parts {
		doc, err := readSlidePart(part.file)
		if err != nil {
			return nil, &ImportError{Format: "pptx", Reason: fmt.Sprintf("slide %d: %v", part.num, err)}
		}

		title, body := extractSlideText(doc)
		if title == "" && len(body) == 0 {
			continue // picture-only or empty page
		}
		if title == "" {
			title = body[0]
			body = body[1:]
		}

		slideType := SlideTypeBullets
		if len(slides) == 0 {
			slideType = SlideTypeTitle
		}
		slides = append(slides, Slide{
			ID:      len(slides) + 1,
			Type:    slideType,
			Layout:  LayoutDefault,
			Title:   title,
			Content: body,
		})
	}

	if len(slides) == 0 {
		return nil, &ImportError{Format: "pptx", Reason: "no readable text on any slide"}
	}

	return &ImportResult{Slides: slides, SourceFormat: "pptx"}, nil
}

func readSlidePart(f *zip.File) (*pptxSlideDoc, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open zip entry: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read zip entry: %w", err)
	}

	var doc pptxSlideDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse slide XML: %w", err)
	}
	return &doc, nil
}

// extractSlideText splits a page into its title text and body lines. The title
// comes from the title placeholder shape; every other non-empty paragraph
// becomes a body line.
func extractSlideText(doc *pptxSlideDoc) (string, []string) {
	var title string
	body := []string{}

	for _, shape := range doc.Shapes {
		if shape.isTitle() && title == "" {
			var lines []string
			for _, p := range shape.Paragraphs {
				if t := p.text(); t != "" {
					lines = append(lines, t)
				}
			}
			title = strings.Join(lines, " ")
			continue
		}
		for _, p := range shape.Paragraphs {
			if t := p.text(); t != "" {
				body = append(body, t)
			}
		}
	}

	return title, body
}
