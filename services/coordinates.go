package services

import (
	"math"
	"strconv"
	"strings"
)

// ParseCoordinates reads a "lat, lon" string. ok is false unless the string
// has exactly two comma separated finite numbers.
func ParseCoordinates(s string) (lat, lon float64, ok bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, err := parseFinite(parts[0])
	if err != nil {
		return 0, 0, false
	}
	lon, err = parseFinite(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}
