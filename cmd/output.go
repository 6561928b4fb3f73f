package cmd

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-triangle-raytracer/pkg/loaders"
	"github.com/df07/go-triangle-raytracer/pkg/renderer"
)

// writeFrame saves a frame as PNG or binary PPM depending on the file extension
func writeFrame(frame *renderer.Frame, filename string) error {
	var encode func(f *os.File) error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		encode = func(f *os.File) error { return png.Encode(f, frame.RGBA()) }
	case ".ppm":
		encode = func(f *os.File) error { return loaders.EncodePPM(f, frame.RGBA()) }
	default:
		return fmt.Errorf("unsupported output format %q; use .png or .ppm", filepath.Ext(filename))
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Noticef("frame saved as %s", filename)
	return nil
}
