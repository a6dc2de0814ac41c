package models

import "time"

// Site is one measurement location read from the metadata file.
type Site struct {
	Name        string            `json:"name"`
	Coordinates string            `json:"coordinates"`
	Lat         *float64          `json:"lat"`
	Lng         *float64          `json:"lng"`
	Duration    string            `json:"duration,omitempty"`
	StartDate   string            `json:"start_date,omitempty"`
	EndDate     string            `json:"end_date,omitempty"`
	StartAt     *time.Time        `json:"start_at,omitempty"`
	EndAt       *time.Time        `json:"end_at,omitempty"`
	Comments    string            `json:"comments,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// HasLocation reports whether both coordinates parsed.
func (s Site) HasLocation() bool {
	return s.Lat != nil && s.Lng != nil
}

// SiteTable keeps the metadata header order so passthrough columns can be
// shown in the order the operator wrote them.
type SiteTable struct {
	Source  string   `json:"source"`
	Columns []string `json:"columns"`
	Sites   []Site   `json:"sites"`
	Dropped int      `json:"dropped"`
}

// Find returns the site with the given name.
func (t *SiteTable) Find(name string) (Site, bool) {
	if t == nil {
		return Site{}, false
	}
	for _, s := range t.Sites {
		if s.Name == name {
			return s, true
		}
	}
	return Site{}, false
}

// Names lists site names in file order.
func (t *SiteTable) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.Sites))
	for _, s := range t.Sites {
		names = append(names, s.Name)
	}
	return names
}

// Attribute is one column/value pair of a site, in header order.
type Attribute struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}
