package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CountsSuffix ends every per-video counts filename.
const CountsSuffix = "_counts.csv"

// Resolution strategies, best first.
const (
	StrategyExact      = "exact"
	StrategyNormalized = "normalized"
	StrategySubstring  = "substring"
)

var videoExtensions = []string{".avi", ".mp4"}

// Resolution describes which counts file was picked for a name and why.
type Resolution struct {
	Requested  string   `json:"requested"`
	File       string   `json:"file"`
	Path       string   `json:"path"`
	Strategy   string   `json:"strategy"`
	Candidates []string `json:"candidates,omitempty"`
	Ambiguous  bool     `json:"ambiguous"`
}

// Fuzzy reports whether the file was found by anything but its exact name.
func (r Resolution) Fuzzy() bool {
	return r.Strategy != StrategyExact
}

// Resolver finds counts files in a data directory.
type Resolver struct {
	dir string
}

func NewResolver(dir string) *Resolver {
	return &Resolver{dir: dir}
}

// Available lists the counts filenames of the directory, sorted.
func (r *Resolver) Available() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), CountsSuffix) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

// Resolve tries <name>_counts.csv first, then candidates whose normalized
// name equals the normalized request, then candidates that contain it.
// Within a rank the lexicographically first file wins; Ambiguous is set when
// the winning rank had more than one file.
func (r *Resolver) Resolve(name string) (Resolution, error) {
	res := Resolution{Requested: name}

	exact := name + CountsSuffix
	if filepath.Base(exact) == exact {
		if info, err := os.Stat(filepath.Join(r.dir, exact)); err == nil && !info.IsDir() {
			res.File = exact
			res.Path = filepath.Join(r.dir, exact)
			res.Strategy = StrategyExact
			return res, nil
		}
	}

	available, err := r.Available()
	if err != nil {
		return res, &CountsNotFoundError{Requested: name}
	}

	want := NormalizeVideoName(name)
	if want != "" {
		var equal, contains []string
		for _, file := range available {
			got := NormalizeCountsFile(file)
			switch {
			case got == want:
				equal = append(equal, file)
			case strings.Contains(got, want):
				contains = append(contains, file)
			}
		}
		for _, rank := range []struct {
			strategy string
			files    []string
		}{
			{StrategyNormalized, equal},
			{StrategySubstring, contains},
		} {
			if len(rank.files) == 0 {
				continue
			}
			res.File = rank.files[0]
			res.Path = filepath.Join(r.dir, res.File)
			res.Strategy = rank.strategy
			res.Candidates = rank.files
			res.Ambiguous = len(rank.files) > 1
			return res, nil
		}
	}

	return res, &CountsNotFoundError{Requested: name, Available: available}
}

// NormalizeVideoName strips video extensions, surrounding space and case.
func NormalizeVideoName(name string) string {
	for _, ext := range videoExtensions {
		name = strings.ReplaceAll(name, ext, "")
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeCountsFile drops the counts suffix and normalizes the rest like a
// video name.
func NormalizeCountsFile(file string) string {
	return NormalizeVideoName(strings.TrimSuffix(file, CountsSuffix))
}
