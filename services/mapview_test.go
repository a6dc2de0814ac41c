package services

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/models"
)

func located(name string, lat, lng float64) models.Site {
	return models.Site{Name: name, Lat: &lat, Lng: &lng}
}

func TestBuildMapView(t *testing.T) {
	table := &models.SiteTable{Sites: []models.Site{
		located("a.avi", 1, 2),
		located("b.avi", 3, 4),
		located("c.avi", 3, 4),
	}}

	view, err := BuildMapView(table)
	if err != nil {
		t.Fatalf("BuildMapView failed: %v", err)
	}
	if len(view.Markers) != 3 {
		t.Errorf("len(Markers) = %d, want one per site", len(view.Markers))
	}
	if d := view.CenterLat - 7.0/3; d > 1e-9 || d < -1e-9 {
		t.Errorf("CenterLat = %f", view.CenterLat)
	}
	if d := view.CenterLng - 10.0/3; d > 1e-9 || d < -1e-9 {
		t.Errorf("CenterLng = %f", view.CenterLng)
	}
	if view.Zoom != DefaultZoom {
		t.Errorf("Zoom = %d", view.Zoom)
	}

	t.Run("no sites", func(t *testing.T) {
		if _, err := BuildMapView(&models.SiteTable{}); !errors.Is(err, ErrNoSites) {
			t.Errorf("error = %v, want ErrNoSites", err)
		}
	})
}

func TestMarkerTooltipEscaped(t *testing.T) {
	view, err := BuildMapView(&models.SiteTable{Sites: []models.Site{located(`<img src=x onerror="alert(1)">.avi`, 1, 2)}})
	if err != nil {
		t.Fatalf("BuildMapView failed: %v", err)
	}
	m := view.Markers[0]
	if strings.Contains(m.Tooltip, "<img") {
		t.Errorf("Tooltip = %q, want escaped markup", m.Tooltip)
	}
	if !strings.HasPrefix(m.Tooltip, "&lt;img") {
		t.Errorf("Tooltip = %q", m.Tooltip)
	}
	if m.Name != `<img src=x onerror="alert(1)">.avi` {
		t.Errorf("Name = %q, want the raw site name", m.Name)
	}
}

func TestPopup(t *testing.T) {
	popup, err := Popup(located("<b>x</b>.avi", 1, 2))
	if err != nil {
		t.Fatalf("Popup failed: %v", err)
	}
	if !strings.Contains(popup, NotAvailable) {
		t.Error("empty fields should read N/A")
	}
	if !strings.Contains(popup, NoObservations) {
		t.Error("empty comments should read Sin observaciones")
	}
	if strings.Contains(popup, "<b>x</b>") {
		t.Error("site name should be escaped")
	}
}

func TestFingerprint(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_counts.csv", testCounts)

	first, err := Fingerprint(dir)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	again, _ := Fingerprint(dir)
	if first != again {
		t.Error("fingerprint should be stable")
	}

	writeFile(t, dir, "notes.txt", "ignored")
	if got, _ := Fingerprint(dir); got != first {
		t.Error("non-CSV files should not change the fingerprint")
	}

	path := writeFile(t, dir, "b_counts.csv", testCounts)
	added, _ := Fingerprint(dir)
	if added == first {
		t.Error("adding a CSV file should change the fingerprint")
	}

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	if touched, _ := Fingerprint(dir); touched == added {
		t.Error("rewriting a CSV file should change the fingerprint")
	}

	if _, err := Fingerprint(filepath.Join(dir, "missing")); err == nil {
		t.Error("Fingerprint should fail on a missing directory")
	}
}

func TestShareQR(t *testing.T) {
	url := ReportURL("http://localhost:8080/", "Portillo - Lakin.avi")
	if url != "http://localhost:8080/reporte?video=Portillo+-+Lakin.avi" {
		t.Errorf("ReportURL() = %q", url)
	}

	png, err := ShareQR("http://localhost:8080", "Portillo - Lakin.avi", 0)
	if err != nil {
		t.Fatalf("ShareQR failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("ShareQR should return a PNG")
	}
}
