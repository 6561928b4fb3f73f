package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-triangle-raytracer/pkg/scene"
)

// LoadModel loads a .obj or .ply file. PLY meshes carry no materials, so
// their faces use a light grey unless the file has vertex colours.
func LoadModel(filename string, options OBJOptions) ([]scene.Object, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".obj":
		return LoadOBJ(filename, options)
	case ".ply":
		obj, err := LoadPLY(filename, scene.NewMaterial("", scene.NewColour(178, 178, 178)), options)
		if err != nil {
			return nil, err
		}
		return []scene.Object{obj}, nil
	default:
		return nil, fmt.Errorf("unsupported model format %q", filepath.Ext(filename))
	}
}
