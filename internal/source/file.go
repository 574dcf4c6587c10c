package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vfpar/registro/internal/registry"
)

// File reads the collection from a local .json, .yaml or .yml document holding
// a list of records. The file is re-read on every Fetch.
type File struct {
	path string
}

// NewFile returns a File source for path.
func NewFile(path string) (*File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("file source: path is empty")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("file source: unsupported extension %q", filepath.Ext(path))
	}
	return &File{path: path}, nil
}

// Fetch reads and decodes the file.
func (f *File) Fetch(ctx context.Context) ([]registry.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return Decode(f.path, data)
}

// Close is a no-op.
func (f *File) Close() error { return nil }

// Decode parses a collection document, choosing the format from name's
// extension. YAML documents go through the JSON codec so unknown keys are kept
// the same way in both formats.
func Decode(name string, data []byte) ([]registry.Company, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var docs []map[string]any
		if err := yaml.Unmarshal(data, &docs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		encoded, err := json.Marshal(docs)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", name, err)
		}
		data = encoded
	}
	companies, err := registry.DecodeCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return companies, nil
}
