package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Preview is the animated clip shown on a video's summary tab.
type Preview struct {
	Site    string `yaml:"site" json:"site"`
	File    string `yaml:"file" json:"file"`
	Caption string `yaml:"caption" json:"caption"`
	Title   string `yaml:"title" json:"title"`
	Path    string `yaml:"-" json:"-"`
	Exists  bool   `yaml:"-" json:"exists"`
}

type previewManifest struct {
	Previews []Preview `yaml:"previews"`
}

var defaultPreviews = []Preview{
	{Site: "Fracc kusamil C2.avi", File: "kusamil_corto.gif", Caption: "kusamil_corto.gif"},
	{Site: "Filtro merida C2.avi", File: "filtro_corto.gif", Caption: "filtro_corto.gif"},
	{Site: "Fracc kusamil C2 2.avi", File: "kusamil_2.gif", Caption: "kusamil_2.gif"},
	{Site: "Portillo - Lakin.avi", File: "port_lakin.gif", Caption: "port_lakin.gif"},
	{Site: "272 (2025-06-30 18'00'00 - 2025-06-30 18'30'00).avi", File: "272.gif", Caption: "272.gif"},
	{Site: "28 (2025-06-30 08'00'00 - 2025-06-30 08'30'00).avi", File: "zh.gif", Caption: "zh.gif"},
	{Site: "Portillo - Lakin 2.avi", File: "port_lakin_2.gif", Caption: "video"},
	{Site: "Av Portillo - Av Paraiso Maya.avi", File: "port_maya.gif", Caption: "port_maya.gif", Title: "Video"},
}

// Previews maps exact video names onto preview assets in one directory.
type Previews struct {
	dir    string
	bySite map[string]Preview
}

// NewPreviews uses the built-in mapping, or the YAML manifest when one is
// given.
func NewPreviews(dir, manifest string) (*Previews, error) {
	entries := defaultPreviews
	if manifest != "" {
		raw, err := os.ReadFile(manifest)
		if err != nil {
			return nil, fmt.Errorf("failed to read preview manifest: %w", err)
		}
		var m previewManifest
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("failed to parse preview manifest %s: %w", manifest, err)
		}
		entries = m.Previews
	}

	p := &Previews{dir: dir, bySite: make(map[string]Preview, len(entries))}
	for _, e := range entries {
		site := strings.TrimSpace(e.Site)
		if site == "" || e.File == "" {
			continue
		}
		if filepath.Base(e.File) != e.File {
			return nil, fmt.Errorf("preview file for %q must be a bare filename, got %q", site, e.File)
		}
		if e.Caption == "" {
			e.Caption = e.File
		}
		if e.Title == "" {
			e.Title = "Preview del Video (GIF)"
		}
		e.Site = site
		p.bySite[site] = e
	}
	return p, nil
}

func (p *Previews) Dir() string {
	return p.dir
}

// Lookup returns the preview of a video, if one is mapped. Exists reports
// whether the asset is on disk.
func (p *Previews) Lookup(site string) (Preview, bool) {
	pv, ok := p.bySite[strings.TrimSpace(site)]
	if !ok {
		return Preview{}, false
	}
	pv.Path = filepath.Join(p.dir, pv.File)
	info, err := os.Stat(pv.Path)
	pv.Exists = err == nil && !info.IsDir()
	return pv, true
}
