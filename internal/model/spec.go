package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Spec is the on-disk description of a model: family, priors, and an
// optional dataset reference. Specs are TOML files discovered by the
// registry scan.
type Spec struct {
	ID        string   `toml:"id"`
	Name      string   `toml:"name"`
	Family    string   `toml:"family"`
	Dim       int      `toml:"dim"`
	Dataset   string   `toml:"dataset"`
	PriorMean float64  `toml:"prior_mean"`
	PriorStd  float64  `toml:"prior_std"`
	ObsStd    float64  `toml:"obs_std"`
	Command   []string `toml:"command"`

	// Directory of the spec file, for resolving relative dataset paths.
	dir string
}

// LoadSpec parses a model spec file. The ID defaults to the file name
// without extension when the spec omits it.
func LoadSpec(path string) (Spec, error) {
	var s Spec
	b, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := toml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("parse spec %s: %w", path, err)
	}
	if strings.TrimSpace(s.Family) == "" {
		return s, fmt.Errorf("spec %s: family is required", path)
	}
	if s.ID == "" {
		base := filepath.Base(path)
		s.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if s.Name == "" {
		s.Name = s.ID
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return s, fmt.Errorf("abs path: %w", err)
	}
	s.dir = filepath.Dir(abs)
	return s, nil
}

// DatasetPath resolves the dataset reference against the spec directory.
// Empty when the spec declares no dataset.
func (s Spec) DatasetPath() string {
	if s.Dataset == "" {
		return ""
	}
	if filepath.IsAbs(s.Dataset) {
		return s.Dataset
	}
	return filepath.Join(s.dir, s.Dataset)
}

// priorStd returns the prior stddev with the package default applied.
func (s Spec) priorStd() float64 {
	if s.PriorStd > 0 {
		return s.PriorStd
	}
	return 10.0
}

// obsStd returns the observation stddev with the package default applied.
func (s Spec) obsStd() float64 {
	if s.ObsStd > 0 {
		return s.ObsStd
	}
	return 1.0
}
