package settings

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed viewer.yaml
var defaultYAML []byte

// ReadOverride reads a settings file from disk. An empty path yields no data.
func ReadOverride(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("settings: read %s: %w", path, err)
	}
	return data, nil
}
