package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/hotabics/pitchtimerai-sub001/i18n"
)

// ReadScriptBlocksFromFile turns a local file into the script blocks the
// slide generators consume. Supported: Markdown and plain text (headings or
// paragraphs delimit blocks), CSV (title,content columns), and Excel
// workbooks in both the current and the legacy binary format.
func ReadScriptBlocksFromFile(path string) ([]ScriptBlock, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".md", ".markdown", ".txt":
		return readTextBlocks(path)
	case ".csv":
		return readCSVBlocks(path)
	case ".xlsx":
		return readXLSXBlocks(path)
	case ".xls":
		return readXLSBlocks(path)
	default:
		return nil, &ImportError{Format: strings.TrimPrefix(ext, "."), Reason: "unsupported script source format"}
	}
}

// readTextBlocks reads a Markdown or plain-text script file.
func readTextBlocks(path string) ([]ScriptBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.T("source.read_failed"), err)
	}
	blocks := ParseScriptText(string(data))
	if len(blocks) == 0 {
		return nil, errors.New(i18n.T("source.nothing_usable"))
	}
	return blocks, nil
}

// ParseScriptText splits script text into titled blocks. When the text uses
// Markdown headings, each heading starts a block; otherwise blank-line
// separated paragraphs become blocks with their first line as the title.
func ParseScriptText(text string) []ScriptBlock {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	hasHeadings := false
	for _, line := range lines {
		if isMarkdownHeading(line) {
			hasHeadings = true
			break
		}
	}
	if hasHeadings {
		return parseHeadingBlocks(lines)
	}
	return parseParagraphBlocks(lines)
}

func isMarkdownHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return false
	}
	rest := strings.TrimLeft(trimmed, "#")
	return strings.HasPrefix(rest, " ") && strings.TrimSpace(rest) != ""
}

func parseHeadingBlocks(lines []string) []ScriptBlock {
	blocks := []ScriptBlock{}
	var current *ScriptBlock
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(body, "\n"))
		if current.Content != "" || current.Title != "" {
			blocks = append(blocks, *current)
		}
		current = nil
		body = nil
	}

	for _, line := range lines {
		if isMarkdownHeading(line) {
			flush()
			title := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
			current = &ScriptBlock{Title: title}
			continue
		}
		if current != nil {
			body = append(body, line)
		}
		// Text before the first heading is preamble, dropped
	}
	flush()
	return blocks
}

func parseParagraphBlocks(lines []string) []ScriptBlock {
	blocks := []ScriptBlock{}
	var para []string

	flush := func() {
		if len(para) == 0 {
			return
		}
		title := strings.TrimSpace(para[0])
		content := strings.TrimSpace(strings.Join(para[1:], "\n"))
		if content == "" {
			content = title
		}
		blocks = append(blocks, ScriptBlock{Title: title, Content: content})
		para = nil
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		para = append(para, line)
	}
	flush()
	return blocks
}

// readCSVBlocks reads a two-column CSV: title, content. A leading header row
// naming those columns is skipped.
func readCSVBlocks(path string) ([]ScriptBlock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.T("source.read_failed"), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are fine, we take the first two fields
	records, err := r.ReadAll()
	if err != nil {
		return nil, &ImportError{Format: "csv", Reason: err.Error()}
	}
	return rowsToBlocks(records)
}

// readXLSXBlocks reads the first sheet of a modern Excel workbook.
func readXLSXBlocks(path string) ([]ScriptBlock, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ImportError{Format: "xlsx", Reason: err.Error()}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(i18n.T("source.nothing_usable"))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ImportError{Format: "xlsx", Reason: err.Error()}
	}
	return rowsToBlocks(rows)
}

// readXLSBlocks reads the first sheet of a legacy binary Excel workbook.
func readXLSBlocks(path string) ([]ScriptBlock, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, &ImportError{Format: "xls", Reason: err.Error()}
	}
	if wb.NumSheets() == 0 {
		return nil, errors.New(i18n.T("source.nothing_usable"))
	}
	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, errors.New(i18n.T("source.nothing_usable"))
	}

	rows := make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			continue
		}
		rows = append(rows, []string{row.Col(0), row.Col(1)})
	}
	return rowsToBlocks(rows)
}

// rowsToBlocks maps tabular rows onto script blocks: first column title,
// second column content. A header row naming the columns is skipped.
func rowsToBlocks(rows [][]string) ([]ScriptBlock, error) {
	blocks := []ScriptBlock{}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		title := strings.TrimSpace(row[0])
		content := ""
		if len(row) > 1 {
			content = strings.TrimSpace(row[1])
		}
		if title == "" && content == "" {
			continue
		}
		if i == 0 && isHeaderRow(title, content) {
			continue
		}
		if content == "" {
			content = title
		}
		blocks = append(blocks, ScriptBlock{Title: title, Content: content})
	}
	if len(blocks) == 0 {
		return nil, errors.New(i18n.T("source.nothing_usable"))
	}
	return blocks, nil
}

func isHeaderRow(title, content string) bool {
	t := strings.ToLower(title)
	c := strings.ToLower(content)
	return (t == "title" || t == "section" || t == "heading") &&
		(c == "content" || c == "text" || c == "body" || c == "")
}
