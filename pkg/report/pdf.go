package report

import (
	"bytes"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"flowrelay/pkg/models"
)

// PDF renders the report as a landscape A4 document: title, period,
// summary line, then a striped table with a page footer.
func PDF(report *models.TripsReport) (string, []byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")

	generated := time.Now().Format("Jan 2, 2006 15:04")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetX(15)
		pdf.CellFormat(0, 5, "Generated on "+generated, "", 0, "L", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(0, 9, "Flow Relay - Trips Report", "", 1, "L", false, 0, "")

	start, end := report.Filters.StartDate, report.Filters.EndDate
	if start == "" {
		start = "All"
	}
	if end == "" {
		end = "All"
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, fmt.Sprintf("Report Period: %s to %s", start, end), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(0, 7, "Summary Statistics", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	for _, sr := range summaryRows(report.Summary) {
		pdf.CellFormat(55, 5, sr[0]+": "+sr[1], "", 0, "L", false, 0, "")
	}
	pdf.Ln(9)

	head := []string{"ID", "Date", "Client", "Driver", "Pickup", "Dropoff", "Mileage", "Status"}
	widths := []float64{15, 22, 35, 35, 55, 55, 20, 30}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(66, 139, 202)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range head {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(60, 60, 60)
	for i, trip := range report.Trips {
		if i%2 == 1 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		cells := []string{
			fmt.Sprintf("#%d", trip.ID),
			trip.PickupDate,
			clip(trip.ClientName, 20),
			clip(trip.DriverName, 20),
			clip(trip.PickupAddress, 30),
			clip(trip.DropoffAddress, 30),
			fmt.Sprintf("%.1f mi", trip.TotalMileage),
			statusLabel(trip.Status),
		}
		for j, cell := range cells {
			pdf.CellFormat(widths[j], 6, cell, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", nil, err
	}
	return filename(report, "pdf"), buf.Bytes(), nil
}

// clip shortens text to max runes; slicing bytes would split multibyte
// characters and corrupt the cell.
func clip(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	return string([]rune(text)[:max]) + "..."
}
