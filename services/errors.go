package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoSites     = errors.New("no sites with valid coordinates")
	ErrUnknownView = errors.New("unknown export view")
	ErrEmptyView   = errors.New("view has no rows")
)

// FileNotFoundError reports a data file that does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// MissingColumnError reports a required CSV column that is absent.
type MissingColumnError struct {
	Path      string
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing column %q (available: %s)", e.Path, e.Column, strings.Join(e.Available, ", "))
}

// CountsNotFoundError reports that no counts file matched a video name.
type CountsNotFoundError struct {
	Requested string
	Available []string
}

func (e *CountsNotFoundError) Error() string {
	return fmt.Sprintf("no counts file for %q", e.Requested)
}
