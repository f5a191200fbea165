package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	ErrAssetNotFound = errors.New("model: asset not found")
	ErrSceneSelector = errors.New("model: invalid scene selector")
	ErrNoScene       = errors.New("model: scene not found")
)

const scenePrefix = "Scene"

// SplitSelector separates an asset path from its "#SceneN" suffix. A path
// without a suffix returns scene -1, meaning the document's default scene.
func SplitSelector(path string) (file string, scene int, err error) {
	file, sel, ok := strings.Cut(path, "#")
	if !ok {
		return path, -1, nil
	}
	num, found := strings.CutPrefix(sel, scenePrefix)
	if !found || num == "" {
		return "", 0, fmt.Errorf("%w: %q", ErrSceneSelector, sel)
	}
	scene, err = strconv.Atoi(num)
	if err != nil || scene < 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrSceneSelector, sel)
	}
	return file, scene, nil
}

// WithScene appends a scene selector to an asset path.
func WithScene(file string, scene int) string {
	return file + "#" + scenePrefix + strconv.Itoa(scene)
}

// Resolve maps a CLI asset name to a file under <assetsDir>/gltf and checks
// that it exists.
func Resolve(assetsDir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrAssetNotFound)
	}
	path := filepath.Join(assetsDir, "gltf", filepath.FromSlash(name))
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrAssetNotFound, path)
		}
		return "", fmt.Errorf("model: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrAssetNotFound, path)
	}
	return path, nil
}
