// Package export writes and reads YAML snapshots of the stored paths.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/blackwell-systems/pathnotes/internal/hierarchy"
	"github.com/blackwell-systems/pathnotes/internal/pathkit"
	"gopkg.in/yaml.v3"
)

// Document is the top-level YAML export.
type Document struct {
	Root       string    `yaml:"root"`
	ExportedAt time.Time `yaml:"exported_at"`
	Devices    []Device  `yaml:"devices"`
}

// Device holds the paths stored for one device.
type Device struct {
	Name  string `yaml:"name"`
	Paths []Path `yaml:"paths"`
}

// Path is one exported path note.
type Path struct {
	Path string `yaml:"path"`
	URL  string `yaml:"url,omitempty"`
}

// Count returns the total number of paths across all devices.
func (d *Document) Count() int {
	n := 0
	for _, dev := range d.Devices {
		n += len(dev.Paths)
	}
	return n
}

// Build collects every device and its paths below root. Devices and paths
// are sorted by name so repeated exports diff cleanly.
func Build(ctx context.Context, svc *hierarchy.Service, root *hierarchy.Note, now time.Time) (*Document, error) {
	devices, err := svc.Devices(ctx, root)
	if err != nil {
		return nil, err
	}
	entries, err := svc.Entries(ctx, root)
	if err != nil {
		return nil, err
	}

	byDevice := make(map[string][]Path, len(devices))
	for _, e := range entries {
		p := Path{Path: e.Path}
		if pathkit.Normalize(e.Path).Absolute {
			p.URL = pathkit.FileURL(e.Path)
		}
		byDevice[e.Device] = append(byDevice[e.Device], p)
	}

	doc := &Document{Root: root.Text, ExportedAt: now.UTC(), Devices: []Device{}}
	for _, d := range devices {
		name := strings.TrimSpace(d.Text)
		paths := byDevice[name]
		if paths == nil {
			paths = []Path{}
		}
		sort.Slice(paths, func(i, j int) bool { return paths[i].Path < paths[j].Path })
		doc.Devices = append(doc.Devices, Device{Name: name, Paths: paths})
	}
	sort.SliceStable(doc.Devices, func(i, j int) bool { return doc.Devices[i].Name < doc.Devices[j].Name })
	return doc, nil
}

// Encode writes doc to w as YAML.
func Encode(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return enc.Close()
}

// Decode reads a YAML export from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	return &doc, nil
}

// Load reads a YAML export from path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
