package loaders

import (
	"encoding/binary"
	"path/filepath"
	"testing"
)

func TestLoadModel(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"tri.obj":   "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n",
		"notes.stl": "solid nothing\n",
	})
	createTestPLY(t, filepath.Join(dir, "square.PLY"), binary.LittleEndian, false, false)

	tests := []struct {
		file      string
		triangles int
		expectErr bool
	}{
		{"tri.obj", 1, false},
		{"square.PLY", 2, false},
		{"notes.stl", 0, true},
		{"missing.obj", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			objects, err := LoadModel(filepath.Join(dir, tt.file), DefaultOBJOptions())
			if tt.expectErr {
				if err == nil {
					t.Error("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadModel failed: %v", err)
			}
			if len(objects) != 1 || len(objects[0].Triangles) != tt.triangles {
				t.Errorf("Expected one object with %d triangles, got %d objects", tt.triangles, len(objects))
			}
		})
	}
}
