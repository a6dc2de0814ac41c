// Package web holds the dashboard page templates.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
