package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/metrics"
	"github.com/EGarpxMaster/analisis-aforo-vehicular/models"

	"github.com/rs/zerolog"
)

// Counts column names.
const (
	ColLineID = "line_id"
	ColClass  = "class"
	ColCount  = "count"
)

type CountsLoader struct {
	resolver *Resolver
	cache    Cache
	ttl      time.Duration
	logger   *zerolog.Logger
}

func NewCountsLoader(resolver *Resolver, cache Cache, ttl time.Duration, logger *zerolog.Logger) *CountsLoader {
	if cache == nil {
		cache = NoCache()
	}
	return &CountsLoader{resolver: resolver, cache: cache, ttl: ttl, logger: logger}
}

// Load resolves the counts file of a video and parses it.
func (l *CountsLoader) Load(ctx context.Context, name string) (*models.CountsTable, Resolution, error) {
	res, err := l.resolver.Resolve(name)
	if err != nil {
		metrics.FileLoads.WithLabelValues("counts", "not_found").Inc()
		return nil, res, err
	}
	metrics.Resolutions.WithLabelValues(res.Strategy).Inc()
	if res.Fuzzy() {
		l.logger.Info().Str("requested", name).Str("file", res.File).Str("strategy", res.Strategy).
			Bool("ambiguous", res.Ambiguous).Msg("counts file resolved by fuzzy match")
	}

	table, err := l.LoadFile(ctx, res.Path)
	if err != nil {
		return nil, res, err
	}
	return table, res, nil
}

// LoadFile parses a counts file at a known path.
func (l *CountsLoader) LoadFile(ctx context.Context, path string) (*models.CountsTable, error) {
	modTime, err := statFile(path)
	if err != nil {
		metrics.FileLoads.WithLabelValues("counts", "error").Inc()
		return nil, err
	}

	key := CacheKey("counts", path, modTime)
	var cached models.CountsTable
	if err := l.cache.Get(ctx, key, &cached); err == nil {
		metrics.CacheLookups.WithLabelValues("counts", "hit").Inc()
		return &cached, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		l.logger.Warn().Err(err).Str("key", key).Msg("counts cache read failed")
	}
	metrics.CacheLookups.WithLabelValues("counts", "miss").Inc()

	table, err := l.parse(path)
	if err != nil {
		metrics.FileLoads.WithLabelValues("counts", "error").Inc()
		return nil, err
	}
	metrics.FileLoads.WithLabelValues("counts", "ok").Inc()

	if err := l.cache.Set(ctx, key, table, l.ttl); err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("counts cache write failed")
	}
	return table, nil
}

func (l *CountsLoader) parse(path string) (*models.CountsTable, error) {
	file, err := readCSV(path, l.logger)
	if err != nil {
		return nil, err
	}
	colMap, err := columnIndex(path, file.Header, ColLineID, ColClass, ColCount)
	if err != nil {
		return nil, err
	}

	table := &models.CountsTable{
		Source:  path,
		Columns: file.Header,
		Records: make([]models.DetectionRecord, 0, len(file.Rows)),
	}
	for _, row := range file.Rows {
		count, ok := CoerceCount(row[colMap[ColCount]])
		if !ok {
			table.Coerced++
		}
		rec := models.DetectionRecord{
			LineID: strings.TrimSpace(row[colMap[ColLineID]]),
			Class:  strings.TrimSpace(row[colMap[ColClass]]),
			Count:  count,
		}
		for i, col := range file.Header {
			if col == ColLineID || col == ColClass || col == ColCount || col == "" {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[col] = row[i]
		}
		table.Records = append(table.Records, rec)
	}
	if table.Coerced > 0 {
		metrics.CountsCoerced.Add(float64(table.Coerced))
		l.logger.Info().Int("rows", table.Coerced).Str("file", path).Msg("non-numeric counts coerced to zero")
	}
	return table, nil
}

// CoerceCount parses a count cell. Integer and decimal text is rounded to a
// non-negative integer; anything else yields 0 with ok=false. Negative values
// clamp to 0 but still count as numeric.
func CoerceCount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, true
		}
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < 0 {
		return 0, true
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64, true
	}
	return int64(math.Round(f)), true
}
