package main

import (
	"regexp"
	"strings"
	"unicode"
)

// Deterministic slide generation. Maps an ordered rehearsal script into an
// initial deck without touching the network, so it doubles as the fallback
// path when AI generation fails. Same input always produces the same deck.

var (
	// figureRe matches a standalone numeric figure: $4.2B, 95%, 10x, 1,200+
	figureRe = regexp.MustCompile(`[$€£]?\d[\d,.]*\s?(?:%|x|X|k|K|m|M|bn|B\b|\+)?`)
	// imageMarkerRe matches an explicit per-block image hint line
	imageMarkerRe = regexp.MustCompile(`(?i)^image\s*:\s*(.+)$`)
	// imageTitleRe matches block titles that ask for a visual
	imageTitleRe = regexp.MustCompile(`(?i)\b(image|photo|picture|visual|screenshot|demo|logo|mockup)\b`)
	// quoteAttributionRe captures "— Name" or "- Name" after a closing quote
	quoteAttributionRe = regexp.MustCompile(`["”'’]\s*[-—]\s*(.+)$`)
	// sentenceRe splits paragraph text into sentences
	sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]?`)
)

// stopWords are skipped when deriving image keywords from a slide title.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "to": true, "and": true,
	"or": true, "for": true, "in": true, "on": true, "with": true, "our": true,
	"your": true, "my": true, "is": true, "are": true, "we": true, "how": true,
	"why": true, "what": true,
}

// GenerateSlidesFromBlocks builds the initial deck for a script: one title
// slide, then one slide per block with sequential ids starting at 1. Block
// type is chosen by heuristic, in priority order: explicit image marker,
// quoted line, numeric-heavy content, imagery title, short emphatic line,
// otherwise bullets. Every block slide keeps its source text in
// ScriptSegment and gets an image keyword derived from its title.
func GenerateSlidesFromBlocks(blocks []ScriptBlock, projectTitle string) []Slide {
	title := strings.TrimSpace(projectTitle)
	if title == "" {
		title = "Untitled Pitch"
	}

	slides := make([]Slide, 0, len(blocks)+1)
	slides = append(slides, Slide{
		ID:           1,
		Type:         SlideTypeTitle,
		Layout:       LayoutDefault,
		Title:        title,
		Content:      []string{},
		ImageKeyword: DeriveImageKeyword(title),
	})

	for i, block := range blocks {
		slide := slideForBlock(block)
		slide.ID = i + 2
		slides = append(slides, slide)
	}
	return slides
}

// slideForBlock classifies one script block and shapes its slide.
func slideForBlock(block ScriptBlock) Slide {
	blockTitle := strings.TrimSpace(block.Title)
	lines := splitScriptLines(block.Content)

	slide := Slide{
		Type:          SlideTypeBullets,
		Layout:        LayoutDefault,
		Title:         blockTitle,
		Content:       lines,
		ScriptSegment: strings.TrimSpace(block.Content),
		ImageKeyword:  DeriveImageKeyword(blockTitle),
	}

	if keyword, rest, ok := extractImageMarker(lines); ok {
		slide.Type = SlideTypeImage
		slide.ImageKeyword = keyword
		slide.Content = rest
		return slide
	}

	if len(lines) == 1 && isQuotedLine(lines[0]) {
		slide.Type = SlideTypeQuote
		slide.Content = quoteContent(lines[0])
		return slide
	}

	if figure, ok := dominantFigure(lines); ok {
		slide.Type = SlideTypeBigNumber
		slide.Content = bigNumberContent(figure, lines)
		return slide
	}

	if imageTitleRe.MatchString(blockTitle) {
		slide.Type = SlideTypeImage
		return slide
	}

	if len(lines) == 1 && isShoutLine(lines[0]) {
		slide.Type = SlideTypeTitle
		slide.Layout = LayoutShout
		return slide
	}

	return slide
}

// splitScriptLines normalizes block text into display lines: split on
// newlines, strip bullet markers, drop empties. A single long paragraph is
// split into sentences instead, capped at six lines.
func splitScriptLines(content string) []string {
	raw := strings.Split(content, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		l = strings.TrimLeft(l, "-*• \t")
		if l != "" {
			lines = append(lines, l)
		}
	}

	if len(lines) == 1 && len([]rune(lines[0])) > 180 {
		sentences := sentenceRe.FindAllString(lines[0], -1)
		lines = lines[:0]
		for _, s := range sentences {
			s = strings.TrimSpace(s)
			if s != "" {
				lines = append(lines, s)
			}
			if len(lines) == 6 {
				break
			}
		}
	}
	return lines
}

// extractImageMarker looks for an "image: keyword" line. It returns the
// keyword and the remaining lines when found.
func extractImageMarker(lines []string) (string, []string, bool) {
	for i, l := range lines {
		m := imageMarkerRe.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		rest := make([]string, 0, len(lines)-1)
		rest = append(rest, lines[:i]...)
		rest = append(rest, lines[i+1:]...)
		return strings.TrimSpace(m[1]), rest, true
	}
	return "", nil, false
}

// isQuotedLine reports whether a line is a short quotation.
func isQuotedLine(s string) bool {
	if len([]rune(s)) > 160 {
		return false
	}
	return strings.HasPrefix(s, `"`) || strings.HasPrefix(s, "“") ||
		strings.HasPrefix(s, "'") || strings.HasPrefix(s, "‘")
}

// quoteContent strips the surrounding quote marks and pulls out a trailing
// attribution ("— Name") as a second content entry.
func quoteContent(line string) []string {
	text := line
	attribution := ""
	if m := quoteAttributionRe.FindStringSubmatchIndex(line); m != nil {
		attribution = strings.TrimSpace(line[m[2]:m[3]])
		text = line[:m[0]]
	}
	text = strings.Trim(text, `"“”'‘’ `)
	content := []string{text}
	if attribution != "" {
		content = append(content, attribution)
	}
	return content
}

// dominantFigure reports whether the block is numeric-heavy and returns its
// leading figure. A block qualifies when at least a third of its tokens carry
// digits and a figure token exists.
func dominantFigure(lines []string) (string, bool) {
	var tokens, numeric int
	var figure string
	for _, l := range lines {
		for _, tok := range strings.Fields(l) {
			tokens++
			if strings.ContainsAny(tok, "0123456789") {
				numeric++
			}
		}
		if figure == "" {
			if m := figureRe.FindString(l); m != "" {
				figure = strings.TrimSpace(m)
			}
		}
	}
	if tokens == 0 || figure == "" {
		return "", false
	}
	return figure, numeric*3 >= tokens
}

// bigNumberContent shapes content for a big-number slide: the figure first,
// then the line it came from with the figure removed as supporting text.
func bigNumberContent(figure string, lines []string) []string {
	content := []string{figure}
	for _, l := range lines {
		if !strings.Contains(l, figure) {
			continue
		}
		support := strings.TrimSpace(strings.Replace(l, figure, "", 1))
		support = strings.Trim(support, ",;:- ")
		if support != "" {
			content = append(content, support)
		}
		break
	}
	return content
}

// isShoutLine reports whether a single line reads as an emphasis statement.
func isShoutLine(s string) bool {
	if len([]rune(s)) > 48 {
		return false
	}
	if strings.HasSuffix(s, "!") {
		return true
	}
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// DeriveImageKeyword turns a slide title into a comma-separated image search
// hint, dropping stop words. Falls back to "presentation" when nothing usable
// remains.
func DeriveImageKeyword(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, title)

	keywords := make([]string, 0, 2)
	for _, w := range strings.Fields(cleaned) {
		if stopWords[w] {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) == 2 {
			break
		}
	}
	if len(keywords) == 0 {
		return "presentation"
	}
	return strings.Join(keywords, ",")
}
