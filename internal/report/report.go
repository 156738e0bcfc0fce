// Package report persists a batch of rendered charts as a report directory:
// the chart image files plus a manifest.yaml describing how each was built.
package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/pitchplot/pitchplot-cli/internal/utils"
)

const manifestFileName = "manifest.yaml"

// Report represents a rendered report persisted on disk.
type Report struct {
	ID        string    `yaml:"id"`
	Source    string    `yaml:"source"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
	Charts    []Chart   `yaml:"charts"`

	// Not serialized: on-disk location of the manifest.
	rootDir string `yaml:"-"`
}

// Chart is one rendered chart inside a report.
type Chart struct {
	ID      string   `yaml:"id"`
	Type    string   `yaml:"type"` // bar|scatter|swarm
	Metrics []string `yaml:"metrics"`
	Title   string   `yaml:"title,omitempty"`
	File    string   `yaml:"file"`
}

// New constructs an in-memory report rooted under reportsDir with a fresh id.
// Call Save() to persist.
func New(source, reportsDir string) *Report {
	id := uuid.NewString()
	return &Report{
		ID:        id,
		Source:    source,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		rootDir:   filepath.Join(reportsDir, id),
	}
}

// Load reads a manifest.yaml from the provided directory.
func Load(dir string) (*Report, error) {
	path := filepath.Join(dir, manifestFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("report not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	r.rootDir = dir
	return &r, nil
}

// RootDir returns the on-disk report directory path.
func (r *Report) RootDir() string { return r.rootDir }

// ChartPath returns the full path for a chart file inside the report dir.
func (r *Report) ChartPath(file string) string {
	return filepath.Join(r.rootDir, file)
}

// AddChart records a rendered chart in the manifest.
func (r *Report) AddChart(typ, title, file string, metrics []string) *Chart {
	c := Chart{
		ID:      uuid.NewString(),
		Type:    typ,
		Metrics: metrics,
		Title:   title,
		File:    file,
	}
	r.Charts = append(r.Charts, c)
	r.UpdatedAt = time.Now()
	return &r.Charts[len(r.Charts)-1]
}

// Save writes manifest.yaml using atomic write.
func (r *Report) Save() error {
	if r.rootDir == "" {
		return errors.New("report root directory not set")
	}
	if err := utils.EnsureDir(r.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	r.UpdatedAt = time.Now()
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return utils.SafeWriteFile(filepath.Join(r.rootDir, manifestFileName), data)
}
