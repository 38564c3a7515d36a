package outline

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/starford/deroule/internal/apperr"
	"github.com/starford/deroule/internal/models"
	"github.com/starford/deroule/internal/storage"
)

// ReadManifest decodes the ordered list of slide file names, a JSON array of strings.
func ReadManifest(store storage.Provider, path string) ([]string, error) {
	data, err := store.Read(path)
	if err != nil {
		return nil, fmt.Errorf("outline: manifest: %w", err)
	}
	var files []string
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("outline: manifest %s: %w: %w", path, apperr.ErrFormat, err)
	}
	return files, nil
}

// Load reads the manifest found in slidesDir and extracts every listed file
// in order into a single outline. Any unreadable slide file aborts the load.
func Load(store storage.Provider, slidesDir, manifestFile string, x *Extractor) ([]models.Entry, error) {
	files, err := ReadManifest(store, filepath.Join(slidesDir, manifestFile))
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	for _, name := range files {
		data, err := store.Read(filepath.Join(slidesDir, name))
		if err != nil {
			return nil, fmt.Errorf("outline: slide file: %w", err)
		}
		x.Extract(b, name, data)
	}
	return b.Entries(), nil
}
