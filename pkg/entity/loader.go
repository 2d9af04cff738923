package entity

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem, parses JSON/YAML entity documents and
// registers every entity they declare into a new Registry. When fsys is nil or
// holds no documents the returned registry is empty.
func LoadFS(fsys fs.FS) (*Registry, error) {
	registry := NewRegistry()
	if err := registry.LoadFS(fsys); err != nil {
		return nil, err
	}
	return registry, nil
}

// LoadFS adds the entities declared in fsys to the registry.
func (r *Registry) LoadFS(fsys fs.FS) error {
	if fsys == nil {
		return nil
	}

	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDocumentFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("entity: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(doc.Entities))
		for name := range doc.Entities {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, raw := range names {
			name := strings.TrimSpace(raw)
			if name == "" {
				return fmt.Errorf("entity: file %s declares an entity with an empty name", path)
			}
			ent := doc.Entities[raw]
			ent.Name = name
			if err := r.Register(ent); err != nil {
				return fmt.Errorf("entity: file %s: %w", path, err)
			}
		}
		return nil
	})
}

type documentFile struct {
	Entities map[string]Entity `json:"entities" yaml:"entities"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("entity: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("entity: parse %s: %w", source, err)
		}
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("entity: parse %s: %w", source, err)
	}
	return doc, nil
}

func isDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
