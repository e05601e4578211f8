package export

import (
	"bytes"
	"fmt"
	"strings"

	gospreadsheet "github.com/VantageDataChat/GoExcel"
)

// OutlineExcelService writes the deck outline as a spreadsheet using GoExcel
// (pure Go): one row per slide with type, layout, title, content, image hint
// and notes. Useful for reviewing a deck's structure outside the app.
type OutlineExcelService struct{}

// NewOutlineExcelService creates a new outline export service
func NewOutlineExcelService() *OutlineExcelService {
	return &OutlineExcelService{}
}

var outlineColumns = []struct {
	title string
	width float64
}{
	{"#", 6},
	{"Type", 14},
	{"Layout", 12},
	{"Title", 32},
	{"Content", 60},
	{"Image keyword", 20},
	{"Speaker notes", 48},
}

// ExportDeckOutline renders the outline workbook and returns the .xlsx bytes.
func (s *OutlineExcelService) ExportDeckOutline(doc DeckDocument) ([]byte, error) {
	if len(doc.Slides) == 0 {
		return nil, fmt.Errorf("no slides to export")
	}

	wb := gospreadsheet.New()
	ws := wb.GetActiveSheet()
	ws.SetTitle("Outline")

	headerStyle := gospreadsheet.NewStyle().
		SetFont(&gospreadsheet.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
			Name:  "Calibri",
		}).
		SetFill(&gospreadsheet.Fill{
			Type:  "solid",
			Color: strings.TrimPrefix(doc.Theme.Accent, "#"),
		}).
		SetAlignment(&gospreadsheet.Alignment{
			Horizontal: gospreadsheet.AlignCenter,
			Vertical:   gospreadsheet.AlignMiddle,
		}).
		SetBorders(&gospreadsheet.Borders{
			Left:   gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "FFFFFF"},
			Top:    gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "FFFFFF"},
			Bottom: gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "FFFFFF"},
			Right:  gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "FFFFFF"},
		})

	dataStyle := gospreadsheet.NewStyle().
		SetFont(&gospreadsheet.Font{
			Size: 10,
			Name: "Calibri",
		}).
		SetAlignment(&gospreadsheet.Alignment{
			Horizontal: gospreadsheet.AlignLeft,
			Vertical:   gospreadsheet.AlignMiddle,
			WrapText:   true,
		}).
		SetBorders(&gospreadsheet.Borders{
			Left:   gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
			Top:    gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
			Bottom: gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
			Right:  gospreadsheet.Border{Style: gospreadsheet.BorderThin, Color: "D9D9D9"},
		})

	for i, c := range outlineColumns {
		cellName, _ := gospreadsheet.CellName(0, i)
		ws.SetCellValue(cellName, c.title)
		ws.SetCellStyle(cellName, headerStyle)
		ws.SetColumnWidth(i, c.width)
	}
	ws.SetRowHeight(0, 25)

	for rowIdx, slide := range doc.Slides {
		excelRow := rowIdx + 1
		values := []interface{}{
			slide.Number,
			slide.Type,
			slide.Layout,
			slide.Title,
			strings.Join(slide.Content, "\n"),
			slide.ImageKeyword,
			slide.SpeakerNotes,
		}
		for colIdx, v := range values {
			cellName, _ := gospreadsheet.CellName(excelRow, colIdx)
			ws.SetCellValue(cellName, v)
			ws.SetCellStyle(cellName, dataStyle)
		}
		ws.SetRowHeight(excelRow, 20)
	}

	ws.FreezePane("A2")

	wb.Properties.Title = doc.Title
	wb.Properties.Creator = "PitchDeck"
	wb.Properties.Subject = "Deck outline"
	wb.Properties.Description = fmt.Sprintf("Outline of %q, %d slides", doc.Title, len(doc.Slides))

	var buf bytes.Buffer
	writer := gospreadsheet.NewXLSXWriter()
	if err := writer.Write(wb, &buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
