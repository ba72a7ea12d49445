// Package ingest builds scene graphs from external documents: JSON and
// HCL scene descriptions, plus SQLite snapshots written by the scene
// package.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pgdebus/scenewalk/internal/scene"
)

// LoadFile loads a scene document, dispatching on file extension.
func LoadFile(path string) (*scene.Graph, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read scene %s: %w", path, err)
		}
		return LoadJSON(data)
	case ".hcl":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read scene %s: %w", path, err)
		}
		return LoadHCL(data, path)
	case ".db", ".sqlite":
		return scene.Load(path)
	default:
		return nil, fmt.Errorf("unsupported scene format %q (want .json, .hcl, or .db)", filepath.Ext(path))
	}
}
