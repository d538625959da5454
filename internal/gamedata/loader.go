package gamedata

import (
	"encoding/json"
	"fmt"
	"io/fs"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	return LoadFS[T](dataFS, filename)
}

// LoadFS reads and unmarshals a JSON file from fsys. Tests use it to feed
// alternative data without touching the embedded files.
func LoadFS[T any](fsys fs.FS, filename string) (T, error) {
	var result T

	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return result, fmt.Errorf("failed to read data file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}
