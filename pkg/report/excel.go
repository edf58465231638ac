package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"flowrelay/pkg/models"
)

var columnWidths = []float64{10, 12, 10, 25, 25, 30, 35, 35, 12, 15, 40}

// Excel renders the report as an .xlsx workbook with a single
// "Trips Report" sheet and returns the suggested filename plus bytes.
func Excel(report *models.TripsReport) (string, []byte, error) {
	const sheet = "Trips Report"

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, width)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", nil, err
	}

	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"428BCA"}},
	})
	if err == nil {
		last, _ := excelize.ColumnNumberToName(len(columns))
		f.SetCellStyle(sheet, "A1", last+"1", headStyle)
	}

	rowNum := 2
	for _, trip := range report.Trips {
		values := row(trip)
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &cells); err != nil {
			return "", nil, err
		}
		rowNum++
	}

	// Blank spacer, then the summary block.
	rowNum++
	for _, sr := range summaryRows(report.Summary) {
		cells := []interface{}{sr[0], sr[1]}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &cells); err != nil {
			return "", nil, err
		}
		rowNum++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", nil, err
	}
	return filename(report, "xlsx"), buf.Bytes(), nil
}
