package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/metrics"
	"github.com/EGarpxMaster/analisis-aforo-vehicular/models"

	"github.com/rs/zerolog"
)

// Metadata column names.
const (
	ColName        = "Nombre_archivo"
	ColCoordinates = "Coordenadas"
	ColDuration    = "Duracion_video"
	ColStart       = "Fecha_inicio"
	ColEnd         = "Fecha_fin"
	ColComments    = "Comentarios"
)

// DateLayout is the DD/MM/YYYY HH:MM:SS format of Fecha_inicio/Fecha_fin.
const DateLayout = "02/01/2006 15:04:05"

var knownColumns = map[string]bool{
	ColName: true, ColCoordinates: true, ColDuration: true,
	ColStart: true, ColEnd: true, ColComments: true,
}

type MetadataLoader struct {
	path   string
	cache  Cache
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewMetadataLoader(path string, cache Cache, ttl time.Duration, logger *zerolog.Logger) *MetadataLoader {
	if cache == nil {
		cache = NoCache()
	}
	return &MetadataLoader{path: path, cache: cache, ttl: ttl, logger: logger}
}

func (l *MetadataLoader) Path() string {
	return l.path
}

// Load returns the sites whose coordinates parsed. Dropped counts the rest.
// Unlike LoadAll it requires the Coordenadas column.
func (l *MetadataLoader) Load(ctx context.Context) (*models.SiteTable, error) {
	all, err := l.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := columnIndex(all.Source, all.Columns, ColCoordinates); err != nil {
		return nil, err
	}

	valid := &models.SiteTable{
		Source:  all.Source,
		Columns: all.Columns,
		Sites:   make([]models.Site, 0, len(all.Sites)),
	}
	for _, s := range all.Sites {
		if !s.HasLocation() {
			valid.Dropped++
			continue
		}
		valid.Sites = append(valid.Sites, s)
	}
	return valid, nil
}

// LoadAll returns every metadata row, including rows without a location.
func (l *MetadataLoader) LoadAll(ctx context.Context) (*models.SiteTable, error) {
	modTime, err := statFile(l.path)
	if err != nil {
		metrics.FileLoads.WithLabelValues("metadata", "error").Inc()
		return nil, err
	}

	key := CacheKey("metadata", l.path, modTime)
	var cached models.SiteTable
	if err := l.cache.Get(ctx, key, &cached); err == nil {
		metrics.CacheLookups.WithLabelValues("metadata", "hit").Inc()
		return &cached, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		l.logger.Warn().Err(err).Str("key", key).Msg("metadata cache read failed")
	}
	metrics.CacheLookups.WithLabelValues("metadata", "miss").Inc()

	table, err := l.parse()
	if err != nil {
		metrics.FileLoads.WithLabelValues("metadata", "error").Inc()
		return nil, err
	}
	metrics.FileLoads.WithLabelValues("metadata", "ok").Inc()

	if err := l.cache.Set(ctx, key, table, l.ttl); err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("metadata cache write failed")
	}
	return table, nil
}

func (l *MetadataLoader) parse() (*models.SiteTable, error) {
	file, err := readCSV(l.path, l.logger)
	if err != nil {
		return nil, err
	}
	colMap, err := columnIndex(l.path, file.Header, ColName)
	if err != nil {
		return nil, err
	}

	table := &models.SiteTable{
		Source:  l.path,
		Columns: file.Header,
		Sites:   make([]models.Site, 0, len(file.Rows)),
	}
	invalid := 0
	for _, row := range file.Rows {
		site := siteFromRow(row, file.Header, colMap)
		if !site.HasLocation() {
			invalid++
			l.logger.Debug().Str("site", site.Name).Str("coordinates", site.Coordinates).Msg("invalid coordinates")
		}
		table.Sites = append(table.Sites, site)
	}
	if invalid > 0 {
		metrics.SitesDropped.Add(float64(invalid))
		l.logger.Info().Int("rows", invalid).Str("file", l.path).Msg("metadata rows without valid coordinates")
	}
	return table, nil
}

func siteFromRow(row, header []string, colMap map[string]int) models.Site {
	get := func(col string) string {
		if i, ok := colMap[col]; ok {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	site := models.Site{
		Name:        get(ColName),
		Coordinates: get(ColCoordinates),
		Duration:    get(ColDuration),
		StartDate:   get(ColStart),
		EndDate:     get(ColEnd),
		Comments:    get(ColComments),
	}
	if lat, lon, ok := ParseCoordinates(site.Coordinates); ok {
		site.Lat, site.Lng = &lat, &lon
	}
	site.StartAt = parseDate(site.StartDate)
	site.EndAt = parseDate(site.EndDate)

	for i, col := range header {
		if knownColumns[col] || col == "" {
			continue
		}
		if site.Extra == nil {
			site.Extra = make(map[string]string)
		}
		site.Extra[col] = row[i]
	}
	return site
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// Attributes lists every column of the site except its name, in header order.
// Empty values read "N/A".
func Attributes(table *models.SiteTable, site models.Site) []models.Attribute {
	attrs := make([]models.Attribute, 0, len(table.Columns))
	for _, col := range table.Columns {
		var v string
		switch col {
		case ColName:
			continue
		case ColCoordinates:
			v = site.Coordinates
		case ColDuration:
			v = site.Duration
		case ColStart:
			v = site.StartDate
		case ColEnd:
			v = site.EndDate
		case ColComments:
			v = site.Comments
		default:
			v = site.Extra[col]
		}
		attrs = append(attrs, models.Attribute{Column: col, Value: orNA(v)})
	}
	return attrs
}

// Overview computes the landing page statistics from the valid sites.
func Overview(table *models.SiteTable) models.Overview {
	ov := models.Overview{Sites: len(table.Sites), Period: NotAvailable}

	var first, last *time.Time
	for _, s := range table.Sites {
		if s.Duration != "" {
			ov.VideosAnalyzed++
		}
		if s.StartAt != nil && (first == nil || s.StartAt.Before(*first)) {
			first = s.StartAt
		}
		if s.EndAt != nil && (last == nil || s.EndAt.After(*last)) {
			last = s.EndAt
		}
	}
	if first != nil && last != nil {
		ov.Period = first.Format("02/01/2006") + " - " + last.Format("02/01/2006")
	}
	return ov
}
