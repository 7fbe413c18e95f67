package manager

import (
	"latentd/internal/common/fsutil"
	"latentd/pkg/types"
)

// Helper: find model in registry by id.
func (m *Manager) getModelByID(id string) (types.Model, bool) {
	for _, mdl := range m.registry {
		if mdl.ID == id {
			return mdl, true
		}
	}
	return types.Model{}, false
}

// Helper: estimate instance memory from the dataset file size (MB).
// Models without a dataset get a conservative 1MB so budget checks still
// account for them.
func (m *Manager) estimateMemMB(mdl types.Model) int {
	if mdl.DatasetPath == "" {
		return 1
	}
	return fsutil.FileSizeMB(mdl.DatasetPath)
}
