package models

// Line identifiers used by the counting pipeline.
const (
	LineOne = "1"
	LineTwo = "2"
	LineAll = "ALL"
)

// DetectionRecord is one row of a per-video counts file.
type DetectionRecord struct {
	LineID string            `json:"line_id"`
	Class  string            `json:"class"`
	Count  int64             `json:"count"`
	Extra  map[string]string `json:"extra,omitempty"`
}

// CountsTable is the parsed content of a counts file.
type CountsTable struct {
	Source  string            `json:"source"`
	Columns []string          `json:"columns"`
	Records []DetectionRecord `json:"records"`
	Coerced int               `json:"coerced"`
}
