package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-triangle-raytracer/pkg/log"
)

func TestApp_Commands(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		output      string
		expectError bool
	}{
		{"render triangle", []string{"render", "--scene", "triangle", "--width", "16", "--height", "16"}, "frame.png", false},
		{"render cornell as ppm", []string{"render", "-s", "cornell", "--width", "12", "--height", "12", "-p", "single"}, "frame.ppm", false},
		{"render mirrors", []string{"render", "--scene", "mirrors", "--width", "12", "--height", "8", "--max-depth", "1"}, "frame.png", false},
		{"preview", []string{"preview", "--scene", "cornell", "--width", "16", "--height", "16"}, "frame.png", false},
		{"wireframe preview", []string{"preview", "--scene", "triangle", "--wireframe"}, "frame.ppm", false},

		{"unknown scene", []string{"render", "--scene", "nonexistent"}, "frame.png", true},
		{"unknown pattern", []string{"render", "--pattern", "gaussian", "--width", "8", "--height", "8"}, "frame.png", true},
		{"unknown output format", []string{"preview", "--width", "8", "--height", "8"}, "frame.gif", true},
		{"missing model", []string{"preview", "--model", "nowhere.obj"}, "frame.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), tt.output)
			args := append([]string{"go-triangle-raytracer"}, tt.args...)
			args = append(args, "--out", out)

			err := newApp().Run(args)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %v, got none", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %v: %v", tt.args, err)
			}

			info, err := os.Stat(out)
			if err != nil {
				t.Fatalf("Expected output file: %v", err)
			}
			if info.Size() == 0 {
				t.Error("Expected a non-empty output file")
			}
		})
	}
}

func TestApp_GlobalFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		expect string
	}{
		{"verbose", []string{"-v", "scenes"}, "cornell"},
		{"very verbose", []string{"-vv", "scenes"}, "mirrors"},
		{"version", []string{"--version"}, "0.1.0"},
	}
	defer log.SetLevel(log.Notice)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			app := newApp()
			app.Writer = &buf

			if err := app.Run(append([]string{"go-triangle-raytracer"}, tt.args...)); err != nil {
				t.Fatalf("Run %v failed: %v", tt.args, err)
			}
			if !strings.Contains(buf.String(), tt.expect) {
				t.Errorf("Expected %q in output of %v, got %q", tt.expect, tt.args, buf.String())
			}
		})
	}
}

func TestApp_RenderModel(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "plane.obj")
	content := "o plane\nv -1 0 -1\nv 1 0 -1\nv 1 0 1\nv -1 0 1\nf 1 4 3 2\n"
	if err := os.WriteFile(model, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "plane.png")
	err := newApp().Run([]string{"go-triangle-raytracer", "render", "--model", model,
		"--width", "16", "--height", "12", "--eye", "0,2,3", "--target", "0,0,0", "--out", out})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Expected output file: %v", err)
	}
}

func TestApp_ListScenes(t *testing.T) {
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf

	if err := app.Run([]string{"go-triangle-raytracer", "scenes"}); err != nil {
		t.Fatalf("scenes failed: %v", err)
	}
	for _, name := range []string{"triangle", "cornell", "mirrors"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("Expected %q in scene listing, got %q", name, buf.String())
		}
	}
}
