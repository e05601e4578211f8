package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hotabics/pitchtimerai-sub001/i18n"
)

const (
	outlineFetchTimeout = 10 * time.Second
	outlineFetchMaxBody = 2 << 20 // 2 MiB cap on fetched pages
)

// OutlineFetchResult is a fetched page reduced to script blocks plus the page
// title, which becomes the suggested project title.
type OutlineFetchResult struct {
	PageTitle string
	Blocks    []ScriptBlock
}

// FetchOutline downloads a web page and extracts an outline: each h1/h2/h3
// starts a script block, following paragraphs and list items fill its body.
// The fetch is capped in time and size; pages yielding no usable blocks fail.
func FetchOutline(ctx context.Context, pageURL string) (*OutlineFetchResult, error) {
	client := &http.Client{Timeout: outlineFetchTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.T("source.fetch_failed"), err)
	}
	req.Header.Set("User-Agent", "PitchDeck/1.0")
	req.Header.Set("Accept", "text/html")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.T("source.fetch_failed"), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: HTTP %d", i18n.T("source.fetch_failed"), resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, outlineFetchMaxBody))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.T("source.fetch_failed"), err)
	}

	result := &OutlineFetchResult{
		PageTitle: strings.TrimSpace(doc.Find("title").First().Text()),
		Blocks:    extractOutlineBlocks(doc),
	}
	if len(result.Blocks) == 0 {
		return nil, errors.New(i18n.T("source.nothing_usable"))
	}
	return result, nil
}

// extractOutlineBlocks walks headings and body text in document order.
func extractOutlineBlocks(doc *goquery.Document) []ScriptBlock {
	blocks := []ScriptBlock{}
	var current *ScriptBlock
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(body, "\n"))
		if current.Content != "" {
			blocks = append(blocks, *current)
		}
		current = nil
		body = nil
	}

	doc.Find("h1, h2, h3, p, li").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		switch goquery.NodeName(sel) {
		case "h1", "h2", "h3":
			flush()
			current = &ScriptBlock{Title: text}
		default:
			// Body text before the first heading has no block to belong to
			if current != nil {
				body = append(body, text)
			}
		}
	})
	flush()
	return blocks
}
