package loaders

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-triangle-raytracer/pkg/scene"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
)

// LoadTexture loads a PPM, PNG, JPEG, BMP or TIFF image as a texture.
// The format is detected from the file header.
func LoadTexture(filename string) (*scene.Texture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	if magic, err := br.Peek(2); err == nil && magic[0] == 'P' && (magic[1] == '3' || magic[1] == '6') {
		tex, err := DecodePPM(br)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
		}
		return tex, nil
	}

	img, _, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage converts any decoded image to an 8-bit texture, dropping alpha
func TextureFromImage(img image.Image) *scene.Texture {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]scene.Colour, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels[y*width+x] = scene.NewColour(int(r>>8), int(g>>8), int(b>>8))
		}
	}

	return scene.NewTexture(width, height, pixels)
}
