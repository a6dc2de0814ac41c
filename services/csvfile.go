package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// csvFile is a header plus rows, each row padded to the header width.
type csvFile struct {
	Header []string
	Rows   [][]string
}

// statFile maps a missing file onto FileNotFoundError.
func statFile(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, &FileNotFoundError{Path: path}
		}
		return time.Time{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return time.Time{}, fmt.Errorf("%s is a directory", path)
	}
	return info.ModTime(), nil
}

func readCSV(path string, logger *zerolog.Logger) (*csvFile, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &FileNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header of %s: %w", path, err)
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
	}

	out := &csvFile{Header: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("skipping unreadable CSV row")
			continue
		}
		if isBlank(row) {
			continue
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// columnIndex returns header -> position, failing on the first required
// column that is absent.
func columnIndex(path string, header []string, required ...string) (map[string]int, error) {
	colMap := make(map[string]int, len(header))
	for i, col := range header {
		if _, dup := colMap[col]; !dup {
			colMap[col] = i
		}
	}
	for _, col := range required {
		if _, ok := colMap[col]; !ok {
			available := make([]string, len(header))
			copy(available, header)
			return nil, &MissingColumnError{Path: path, Column: col, Available: available}
		}
	}
	return colMap, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
