package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/models"
)

// Aggregation splits a counts table by detection line.
type Aggregation struct {
	Line1    []models.DetectionRecord `json:"line_1"`
	Line2    []models.DetectionRecord `json:"line_2"`
	Combined []models.DetectionRecord `json:"combined"`
}

// LineOf maps a raw line_id onto LineOne or LineTwo. Any other identifier,
// the pre-computed ALL rows included, returns "".
func LineOf(raw string) string {
	raw = strings.TrimSpace(raw)
	switch raw {
	case models.LineOne, models.LineTwo:
		return raw
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return ""
	}
	switch f {
	case 1:
		return models.LineOne
	case 2:
		return models.LineTwo
	}
	return ""
}

// Aggregate partitions records into line 1 and line 2 (file order kept) and
// sums both partitions per category into Combined, sorted by category.
func Aggregate(table *models.CountsTable) Aggregation {
	var agg Aggregation
	if table == nil {
		return agg
	}
	for _, rec := range table.Records {
		switch LineOf(rec.LineID) {
		case models.LineOne:
			agg.Line1 = append(agg.Line1, rec)
		case models.LineTwo:
			agg.Line2 = append(agg.Line2, rec)
		}
	}

	sums := make(map[string]int64)
	for _, part := range [][]models.DetectionRecord{agg.Line1, agg.Line2} {
		for _, rec := range part {
			sums[rec.Class] += rec.Count
		}
	}
	classes := make([]string, 0, len(sums))
	for class := range sums {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	agg.Combined = make([]models.DetectionRecord, 0, len(classes))
	for _, class := range classes {
		agg.Combined = append(agg.Combined, models.DetectionRecord{
			LineID: models.LineAll,
			Class:  class,
			Count:  sums[class],
		})
	}
	return agg
}

// Lookup returns the summed count of a category, or zero when it is absent.
func Lookup(records []models.DetectionRecord, class string) int64 {
	var total int64
	for _, rec := range records {
		if rec.Class == class {
			total += rec.Count
		}
	}
	return total
}

// Total sums every count of the records.
func Total(records []models.DetectionRecord) int64 {
	var total int64
	for _, rec := range records {
		total += rec.Count
	}
	return total
}

// Share is part as a percentage of total, and 0 when total is 0.
func Share(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
