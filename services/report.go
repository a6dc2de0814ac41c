package services

import (
	"fmt"
	"sort"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/models"
)

// Categories shown as metric cards on every tab, in display order.
var KeyCategories = []struct {
	Class string
	Label string
}{
	{"car", "Autos"},
	{"truck", "Camiones"},
	{"person", "Personas"},
}

const (
	Line1Label = "Línea 1"
	Line2Label = "Línea 2"
)

// BuildReport assembles every tab of the report page for one video.
func BuildReport(site string, counts *models.CountsTable, agg Aggregation) *models.Report {
	grandTotal := Total(agg.Combined)

	report := &models.Report{
		Site:    site,
		Summary: lineView("summary", "Resumen General - Todas las Líneas", "Total Vehículos", agg.Combined, true),
		Exports: []string{ViewSummary},
		Notices: []models.Notice{},
	}
	if counts != nil {
		report.Source = counts.Source
		if counts.Coerced > 0 {
			report.Notices = append(report.Notices, models.Info(
				fmt.Sprintf("%d valores de conteo no numéricos se tomaron como 0", counts.Coerced)))
		}
	}

	if len(agg.Line1) > 0 {
		v := lineView("line_1", "Análisis Línea 1", "Total Línea 1", agg.Line1, false)
		report.Line1 = &v
		report.Exports = append(report.Exports, ViewLine1)
	} else {
		report.Notices = append(report.Notices, models.Warning("No hay datos disponibles para la Línea 1"))
	}
	if len(agg.Line2) > 0 {
		v := lineView("line_2", "Análisis Línea 2", "Total Línea 2", agg.Line2, false)
		report.Line2 = &v
		report.Exports = append(report.Exports, ViewLine2)
	} else {
		report.Notices = append(report.Notices, models.Warning("No hay datos disponibles para la Línea 2"))
	}

	if len(agg.Line1) > 0 && len(agg.Line2) > 0 {
		report.Comparison = Compare(agg, grandTotal)
		report.Exports = append(report.Exports, ViewComparison)
	} else {
		report.Notices = append(report.Notices, models.Warning("Se necesitan datos de ambas líneas para realizar la comparativa"))
	}
	return report
}

// Cards returns the total card followed by the key category cards.
func Cards(totalLabel string, records []models.DetectionRecord) []models.MetricCard {
	cards := []models.MetricCard{{Key: "total", Label: totalLabel, Value: Total(records)}}
	for _, c := range KeyCategories {
		cards = append(cards, models.MetricCard{Key: c.Class, Label: c.Label, Value: Lookup(records, c.Class)})
	}
	return cards
}

func lineView(key, title, totalLabel string, records []models.DetectionRecord, ascending bool) models.LineView {
	if records == nil {
		records = []models.DetectionRecord{}
	}
	return models.LineView{
		Key:     key,
		Title:   title,
		Cards:   Cards(totalLabel, records),
		Pie:     Distribution(records),
		Bars:    Bars(records, ascending),
		Records: records,
	}
}

// byClass sums records per category in first-seen order.
func byClass(records []models.DetectionRecord) []models.Bar {
	index := make(map[string]int)
	var bars []models.Bar
	for _, rec := range records {
		i, ok := index[rec.Class]
		if !ok {
			i = len(bars)
			index[rec.Class] = i
			bars = append(bars, models.Bar{Class: rec.Class})
		}
		bars[i].Count += rec.Count
	}
	return bars
}

// Distribution returns the pie slices of the records with their share of the
// total.
func Distribution(records []models.DetectionRecord) []models.Slice {
	total := Total(records)
	bars := byClass(records)
	slices := make([]models.Slice, 0, len(bars))
	for _, b := range bars {
		slices = append(slices, models.Slice{Class: b.Class, Count: b.Count, Percent: Share(b.Count, total)})
	}
	return slices
}

// Bars returns per-category bars ordered by count.
func Bars(records []models.DetectionRecord, ascending bool) []models.Bar {
	bars := byClass(records)
	sort.SliceStable(bars, func(i, j int) bool {
		if ascending {
			return bars[i].Count < bars[j].Count
		}
		return bars[i].Count > bars[j].Count
	})
	if bars == nil {
		bars = []models.Bar{}
	}
	return bars
}

// Compare contrasts the two lines. grandTotal is the combined total used as
// the denominator of both shares.
func Compare(agg Aggregation, grandTotal int64) *models.Comparison {
	t1, t2 := Total(agg.Line1), Total(agg.Line2)
	diff := t1 - t2

	cmp := &models.Comparison{
		Line1Total:    t1,
		Line2Total:    t2,
		Difference:    diff,
		AbsDifference: diff,
		Line1Share:    Share(t1, grandTotal),
		Line2Share:    Share(t2, grandTotal),
		Pivot:         Pivot(agg.Line1, agg.Line2),
	}
	switch {
	case diff > 0:
		cmp.DifferenceHint = "L1 mayor"
	case diff < 0:
		cmp.DifferenceHint = "L1 menor"
		cmp.AbsDifference = -diff
	default:
		cmp.DifferenceHint = "L1 igual"
	}

	for _, part := range []struct {
		label   string
		records []models.DetectionRecord
	}{
		{Line1Label, agg.Line1},
		{Line2Label, agg.Line2},
	} {
		for _, b := range byClass(part.records) {
			cmp.Series = append(cmp.Series, models.SeriesPoint{Line: part.label, Class: b.Class, Count: b.Count})
		}
	}
	return cmp
}

// Pivot builds the category by line table, missing cells filled with zero.
func Pivot(line1, line2 []models.DetectionRecord) []models.PivotRow {
	rows := make(map[string]*models.PivotRow)
	get := func(class string) *models.PivotRow {
		r, ok := rows[class]
		if !ok {
			r = &models.PivotRow{Class: class}
			rows[class] = r
		}
		return r
	}
	for _, rec := range line1 {
		get(rec.Class).Line1 += rec.Count
	}
	for _, rec := range line2 {
		get(rec.Class).Line2 += rec.Count
	}

	out := make([]models.PivotRow, 0, len(rows))
	for _, r := range rows {
		r.Difference = r.Line1 - r.Line2
		r.Total = r.Line1 + r.Line2
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Class < out[j].Class })
	return out
}
