package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"unicode/utf8"

	"flowrelay/pkg/models"

	"github.com/xuri/excelize/v2"
)

func sampleReport() *models.TripsReport {
	return &models.TripsReport{
		Summary: models.ReportSummary{
			TotalTrips:     2,
			TotalMileage:   120.5,
			CompletedTrips: 1,
			CompletionRate: 50,
			AverageMileage: 60.25,
		},
		Trips: []models.ReportTrip{
			{
				ID: 11, PickupDate: "2026-08-01", PickupTime: "09:00",
				ClientName: "Acme Logistics", DriverName: "Dana Driver",
				Vehicle: "Ford Transit (AB123)", PickupAddress: "1 Dock St",
				DropoffAddress: "9 Pier Rd", TotalMileage: 80.5,
				Status: models.OfferCompleted, Description: "Pallets",
			},
			{
				ID: 12, PickupDate: "2026-08-02", PickupTime: "14:30",
				ClientName: "Acme Logistics", DriverName: "—",
				Vehicle: "—", PickupAddress: "1 Dock St",
				DropoffAddress: "3 Yard Ln", TotalMileage: 40,
				Status: models.OfferInProgress, Description: "Crates",
			},
		},
		Filters: models.ReportFilters{StartDate: "2026-08-01", EndDate: "2026-08-31"},
	}
}

func TestFilename(t *testing.T) {
	r := sampleReport()
	if got := filename(r, "csv"); got != "trips_report_2026-08-01_to_2026-08-31.csv" {
		t.Fatalf("filename = %q", got)
	}

	r.Filters = models.ReportFilters{}
	if got := filename(r, "pdf"); got != "trips_report_all_to_all.pdf" {
		t.Fatalf("unfiltered filename = %q", got)
	}
}

func TestStatusLabel(t *testing.T) {
	if got := statusLabel(models.OfferInProgress); got != "IN PROGRESS" {
		t.Fatalf("statusLabel = %q", got)
	}
}

func TestCSVExport(t *testing.T) {
	name, data, err := CSV(sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(name, ".csv") {
		t.Fatalf("filename = %q", name)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2 trips", len(records))
	}
	if records[0][0] != "Trip ID" {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][0] != "#11" || records[1][9] != "COMPLETED" {
		t.Fatalf("first trip row = %v", records[1])
	}
}

func TestExcelExport(t *testing.T) {
	name, data, err := Excel(sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(name, ".xlsx") {
		t.Fatalf("filename = %q", name)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Trips Report", "A1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Trip ID" {
		t.Fatalf("A1 = %q, want the header row", got)
	}
	first, err := f.GetCellValue("Trips Report", "A2")
	if err != nil {
		t.Fatal(err)
	}
	if first != "#11" {
		t.Fatalf("A2 = %q, want the first trip", first)
	}
}

func TestClipKeepsMultibyteTextValid(t *testing.T) {
	if got := clip("Новосибирская область, Ленина 15", 12); !utf8.ValidString(got) {
		t.Fatalf("clip produced invalid UTF-8: %q", got)
	} else if !strings.HasSuffix(got, "...") || utf8.RuneCountInString(got) != 15 {
		t.Fatalf("clip = %q, want 12 runes plus the ellipsis", got)
	}
	if got := clip("1 Dock St", 30); got != "1 Dock St" {
		t.Fatalf("short text must pass through, got %q", got)
	}
}

func TestPDFExport(t *testing.T) {
	name, data, err := PDF(sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(name, ".pdf") {
		t.Fatalf("filename = %q", name)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
}
