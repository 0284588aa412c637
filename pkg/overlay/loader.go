package overlay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-calckit/pkg/model"
)

// LoadFS walks fsys and parses every JSON, YAML or TOML overlay file. Files
// are visited in lexical order. An id defined by more than one file is an
// error. A nil fsys yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isOverlayFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("overlay: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		for _, id := range sortedKeys(doc.Calculators) {
			ov := doc.Calculators[id]
			ov.ID = strings.TrimSpace(id)
			ov.Source = path
			if err := store.Add(ov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single overlay file.
func LoadFile(path string) (*Store, error) {
	if !isOverlayFile(path) {
		return nil, fmt.Errorf("overlay: %s is not a JSON, YAML or TOML file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("overlay: read %s: %w", path, err)
	}
	doc, err := parseDocument(data, path)
	if err != nil {
		return nil, err
	}
	store := NewStore()
	for _, id := range sortedKeys(doc.Calculators) {
		ov := doc.Calculators[id]
		ov.ID = strings.TrimSpace(id)
		ov.Source = filepath.Base(path)
		if err := store.Add(ov); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Add normalises and stores ov.
func (s *Store) Add(ov Overlay) error {
	if ov.ID == "" {
		return fmt.Errorf("overlay: file %s defines an empty calculator id", ov.Source)
	}
	if existing, exists := s.overlays[ov.ID]; exists {
		return fmt.Errorf("overlay: duplicate calculator %q (files %s and %s)", ov.ID, existing.Source, ov.Source)
	}
	s.overlays[ov.ID] = sanitize(ov)
	s.order = append(s.order, ov.ID)
	return nil
}

type documentFile struct {
	Calculators map[string]Overlay `json:"calculators" yaml:"calculators" toml:"calculators"`
}

// Format identifies an overlay encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor maps a file name to its format.
func FormatFor(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	}
	return "", false
}

func isOverlayFile(path string) bool {
	_, ok := FormatFor(path)
	return ok
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(bytes.TrimSpace(data)) == 0 {
		return documentFile{}, fmt.Errorf("overlay: file %s is empty", source)
	}

	format, _ := FormatFor(source)
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return documentFile{}, fmt.Errorf("overlay: parse %s: %w", source, err)
	}
	if len(doc.Calculators) == 0 {
		return documentFile{}, fmt.Errorf("overlay: file %s has no calculators table", source)
	}
	return doc, nil
}

// Encode writes the store as a single overlay document in format.
func (s *Store) Encode(format Format) ([]byte, error) {
	doc := documentFile{Calculators: make(map[string]Overlay, s.Len())}
	for _, ov := range s.All() {
		doc.Calculators[ov.ID] = ov
	}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatTOML:
		return toml.Marshal(doc)
	case FormatYAML:
		return yaml.Marshal(doc)
	}
	return nil, fmt.Errorf("overlay: unknown format %q", format)
}

func sortedKeys(m map[string]Overlay) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cloneContent(c *model.Content) *model.Content {
	if c == nil {
		return nil
	}
	return &model.Content{
		Sections: append([]model.Section(nil), c.Sections...),
		FAQ:      append([]model.FAQ(nil), c.FAQ...),
	}
}
