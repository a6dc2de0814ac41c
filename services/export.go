package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/models"
)

// Export views.
const (
	ViewSummary    = "resumen_general"
	ViewLine1      = "linea1"
	ViewLine2      = "linea2"
	ViewComparison = "comparativa"
)

// ExportFilename names a download after the video and the view.
func ExportFilename(site, view string) string {
	return fmt.Sprintf("%s_%s.csv", site, view)
}

// ExportCSV writes one view as UTF-8 CSV with a header row. Line views keep
// the columns of the source counts file.
func ExportCSV(w io.Writer, view string, counts *models.CountsTable, agg Aggregation) error {
	cw := csv.NewWriter(w)

	switch view {
	case ViewSummary:
		if err := cw.Write([]string{ColClass, ColCount, ColLineID}); err != nil {
			return err
		}
		for _, rec := range agg.Combined {
			if err := cw.Write([]string{rec.Class, strconv.FormatInt(rec.Count, 10), rec.LineID}); err != nil {
				return err
			}
		}
	case ViewLine1, ViewLine2:
		records := agg.Line1
		if view == ViewLine2 {
			records = agg.Line2
		}
		if len(records) == 0 {
			return ErrEmptyView
		}
		columns := []string{ColLineID, ColClass, ColCount}
		if counts != nil && len(counts.Columns) > 0 {
			columns = counts.Columns
		}
		if err := cw.Write(columns); err != nil {
			return err
		}
		for _, rec := range records {
			if err := cw.Write(recordRow(columns, rec)); err != nil {
				return err
			}
		}
	case ViewComparison:
		if len(agg.Line1) == 0 || len(agg.Line2) == 0 {
			return ErrEmptyView
		}
		if err := cw.Write([]string{ColClass, Line1Label, Line2Label, "Diferencia", "Total"}); err != nil {
			return err
		}
		for _, r := range Pivot(agg.Line1, agg.Line2) {
			row := []string{
				r.Class,
				strconv.FormatInt(r.Line1, 10),
				strconv.FormatInt(r.Line2, 10),
				strconv.FormatInt(r.Difference, 10),
				strconv.FormatInt(r.Total, 10),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownView, view)
	}

	cw.Flush()
	return cw.Error()
}

func recordRow(columns []string, rec models.DetectionRecord) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		switch col {
		case ColLineID:
			row[i] = rec.LineID
		case ColClass:
			row[i] = rec.Class
		case ColCount:
			row[i] = strconv.FormatInt(rec.Count, 10)
		default:
			row[i] = rec.Extra[col]
		}
	}
	return row
}
