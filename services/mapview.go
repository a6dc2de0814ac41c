package services

import (
	"bytes"
	"html/template"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/models"

	"gonum.org/v1/gonum/stat"
)

const (
	NotAvailable   = "N/A"
	NoObservations = "Sin observaciones"

	DefaultZoom = 12
)

var popupTemplate = template.Must(template.New("popup").Parse(
	`<div style="font-family: Arial; width: 300px;">` +
		`<h4 style="margin-bottom: 10px; color: #1f2937;">{{.Name}}</h4>` +
		`<p style="margin: 5px 0;"><b>Duración:</b> {{.Duration}}</p>` +
		`<p style="margin: 5px 0;"><b>Fecha inicio:</b> {{.Start}}</p>` +
		`<p style="margin: 5px 0;"><b>Fecha fin:</b> {{.End}}</p>` +
		`<p style="margin: 5px 0;"><b>Coordenadas:</b> {{.Coordinates}}</p>` +
		`<p style="margin: 5px 0;"><b>Observaciones:</b><br>{{.Comments}}</p>` +
		`</div>`))

// BuildMapView centres the map on the mean latitude and mean longitude and
// emits one marker per site, overlapping positions included. Tooltip and
// Popup are HTML; Leaflet renders both as markup.
func BuildMapView(table *models.SiteTable) (*models.MapView, error) {
	if table == nil || len(table.Sites) == 0 {
		return nil, ErrNoSites
	}

	lats := make([]float64, 0, len(table.Sites))
	lngs := make([]float64, 0, len(table.Sites))
	markers := make([]models.Marker, 0, len(table.Sites))
	for _, s := range table.Sites {
		if !s.HasLocation() {
			continue
		}
		popup, err := Popup(s)
		if err != nil {
			return nil, err
		}
		lats = append(lats, *s.Lat)
		lngs = append(lngs, *s.Lng)
		markers = append(markers, models.Marker{
			Name:    s.Name,
			Lat:     *s.Lat,
			Lng:     *s.Lng,
			Tooltip: template.HTMLEscapeString(s.Name),
			Popup:   popup,
			Color:   "red",
			Icon:    "video-camera",
		})
	}
	if len(markers) == 0 {
		return nil, ErrNoSites
	}

	return &models.MapView{
		CenterLat: stat.Mean(lats, nil),
		CenterLng: stat.Mean(lngs, nil),
		Zoom:      DefaultZoom,
		Markers:   markers,
	}, nil
}

// Popup renders the marker popup for a site.
func Popup(s models.Site) (string, error) {
	comments := s.Comments
	if comments == "" {
		comments = NoObservations
	}
	data := struct {
		Name, Duration, Start, End, Coordinates, Comments string
	}{
		Name:        s.Name,
		Duration:    orNA(s.Duration),
		Start:       orNA(s.StartDate),
		End:         orNA(s.EndDate),
		Coordinates: orNA(s.Coordinates),
		Comments:    comments,
	}

	var buf bytes.Buffer
	if err := popupTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func orNA(v string) string {
	if v == "" {
		return NotAvailable
	}
	return v
}
