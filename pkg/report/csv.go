package report

import (
	"bytes"
	"encoding/csv"

	"flowrelay/pkg/models"
)

// CSV renders the trip rows as comma-separated text with a header row.
func CSV(report *models.TripsReport) (string, []byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return "", nil, err
	}
	for _, trip := range report.Trips {
		if err := w.Write(row(trip)); err != nil {
			return "", nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, err
	}
	return filename(report, "csv"), buf.Bytes(), nil
}
