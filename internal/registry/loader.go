package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"latentd/internal/common/fsutil"
	"latentd/internal/model"
	"latentd/pkg/types"
)

// LoadDir scans a directory for *.toml model specs and builds descriptors.
// Spec files that fail to parse are skipped with an error only when nothing
// else loads; a directory of valid specs plus one broken file still yields
// a registry.
func LoadDir(dir string) ([]types.Model, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.Model
	var firstErr error
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".toml") {
			continue
		}
		p := filepath.Join(abs, name)
		spec, err := model.LoadSpec(p)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		models = append(models, types.Model{
			ID:          spec.ID,
			Name:        spec.Name,
			Path:        p,
			Family:      spec.Family,
			Dim:         spec.Dim,
			DatasetPath: spec.DatasetPath(),
		})
	}
	if len(models) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return models, nil
}
