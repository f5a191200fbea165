package assets

import (
	"bytes"
	"embed"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/assetviewer/model"
)

//go:embed gltf/*.gltf
var assetsFS embed.FS

// Names lists the bundled models, relative to gltf/.
func Names() []string {
	entries, err := fs.ReadDir(assetsFS, "gltf")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// LoadModel decodes a bundled model. name may carry a "#SceneN" selector.
func LoadModel(name string) (*model.Mesh, error) {
	file, scene, err := model.SplitSelector(name)
	if err != nil {
		return nil, err
	}
	b, err := LoadFile(path.Join("gltf", filepath.ToSlash(file)))
	if err != nil {
		return nil, err
	}
	return model.Decode(bytes.NewReader(b), scene)
}

func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		s := filepath.ToSlash(p)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(p)
	}
	return strings.TrimPrefix(filepath.ToSlash(p), "assets/")
}
