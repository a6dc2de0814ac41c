package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/models"
)

// Dashboard ties the loaders together for the HTTP layer.
type Dashboard struct {
	Metadata *MetadataLoader
	Counts   *CountsLoader
	Previews *Previews
}

func NewDashboard(metadata *MetadataLoader, counts *CountsLoader, previews *Previews) *Dashboard {
	return &Dashboard{Metadata: metadata, Counts: counts, Previews: previews}
}

// VideoData is a loaded and aggregated counts file.
type VideoData struct {
	Counts      *models.CountsTable
	Resolution  Resolution
	Aggregation Aggregation
}

// LoadVideo resolves, parses and aggregates the counts of one video.
func (d *Dashboard) LoadVideo(ctx context.Context, name string) (*VideoData, error) {
	counts, res, err := d.Counts.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return &VideoData{Counts: counts, Resolution: res, Aggregation: Aggregate(counts)}, nil
}

// Report builds the full report of a video, with resolution and preview
// notices attached.
func (d *Dashboard) Report(ctx context.Context, name string) (*models.Report, *VideoData, error) {
	data, err := d.LoadVideo(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	report := BuildReport(name, data.Counts, data.Aggregation)
	var notices []models.Notice
	notices = append(notices, ResolutionNotices(data.Resolution)...)
	if d.Previews != nil {
		if pv, ok := d.Previews.Lookup(name); ok && !pv.Exists {
			notices = append(notices, models.Warning("GIF no encontrado en: "+pv.Path))
		}
	}
	report.Notices = append(notices, report.Notices...)
	return report, data, nil
}

// ResolutionNotices tells the user which file a fuzzy match picked.
func ResolutionNotices(res Resolution) []models.Notice {
	if !res.Fuzzy() {
		return nil
	}
	notices := []models.Notice{models.Info("Archivo encontrado: " + res.File)}
	if res.Ambiguous {
		n := models.Warning(fmt.Sprintf("Varios archivos coinciden con %q; se usó el primero en orden alfabético", res.Requested))
		n.Items = res.Candidates
		notices = append(notices, n)
	}
	return notices
}

// ErrorNotice converts a load error into the notice shown in place of data.
func ErrorNotice(err error) models.Notice {
	var notFound *FileNotFoundError
	var missingCol *MissingColumnError
	var noCounts *CountsNotFoundError
	switch {
	case errors.As(err, &noCounts):
		n := models.Error(fmt.Sprintf("No se encontró el archivo: %s%s", noCounts.Requested, CountsSuffix))
		n.Items = noCounts.Available
		return n
	case errors.As(err, &missingCol):
		n := models.Error(fmt.Sprintf("No se encontró la columna %s en %s. Columnas disponibles: %s",
			missingCol.Column, missingCol.Path, strings.Join(missingCol.Available, ", ")))
		return n
	case errors.As(err, &notFound):
		return models.Error("No se encontró el archivo: " + notFound.Path)
	case errors.Is(err, ErrNoSites):
		return models.Warning("No hay puntos de medición con coordenadas válidas")
	}
	return models.Error("Error al cargar los datos: " + err.Error())
}
