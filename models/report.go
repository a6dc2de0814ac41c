package models

// MetricCard is one headline number of a report tab.
type MetricCard struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// Slice is one wedge of a distribution pie.
type Slice struct {
	Class   string  `json:"class"`
	Count   int64   `json:"count"`
	Percent float64 `json:"percent"`
}

// Bar is one bar of a category bar chart.
type Bar struct {
	Class string `json:"class"`
	Count int64  `json:"count"`
}

// LineView is the report for one detection line or for the combined counts.
type LineView struct {
	Key     string            `json:"key"`
	Title   string            `json:"title"`
	Cards   []MetricCard      `json:"cards"`
	Pie     []Slice           `json:"pie"`
	Bars    []Bar             `json:"bars"`
	Records []DetectionRecord `json:"records"`
}

// PivotRow is one category of the line comparison table.
type PivotRow struct {
	Class      string `json:"class"`
	Line1      int64  `json:"line_1"`
	Line2      int64  `json:"line_2"`
	Difference int64  `json:"difference"`
	Total      int64  `json:"total"`
}

// SeriesPoint is one bar of the grouped comparison chart.
type SeriesPoint struct {
	Line  string `json:"line"`
	Class string `json:"class"`
	Count int64  `json:"count"`
}

// Comparison contrasts line 1 against line 2.
type Comparison struct {
	Line1Total     int64         `json:"line_1_total"`
	Line2Total     int64         `json:"line_2_total"`
	Difference     int64         `json:"difference"`
	AbsDifference  int64         `json:"abs_difference"`
	DifferenceHint string        `json:"difference_hint"`
	Line1Share     float64       `json:"line_1_share"`
	Line2Share     float64       `json:"line_2_share"`
	Series         []SeriesPoint `json:"series"`
	Pivot          []PivotRow    `json:"pivot"`
}

// Report bundles every view of one video.
type Report struct {
	Site       string      `json:"site"`
	Source     string      `json:"source"`
	Summary    LineView    `json:"summary"`
	Line1      *LineView   `json:"line_1,omitempty"`
	Line2      *LineView   `json:"line_2,omitempty"`
	Comparison *Comparison `json:"comparison,omitempty"`
	Exports    []string    `json:"exports"`
	Notices    []Notice    `json:"notices"`
}

// Overview holds the general statistics of the landing page.
type Overview struct {
	Sites          int    `json:"sites"`
	VideosAnalyzed int    `json:"videos_analyzed"`
	Period         string `json:"period"`
}

// Marker is one site pin on the map.
type Marker struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Tooltip string  `json:"tooltip"`
	Popup   string  `json:"popup"`
	Color   string  `json:"color"`
	Icon    string  `json:"icon"`
}

// MapView is everything the Leaflet page needs to draw the site map.
type MapView struct {
	CenterLat float64  `json:"center_lat"`
	CenterLng float64  `json:"center_lng"`
	Zoom      int      `json:"zoom"`
	Markers   []Marker `json:"markers"`
}
