package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"

	"github.com/df07/go-triangle-raytracer/pkg/scene"
)

// maxPPMPixels bounds the sample buffer allocated from an untrusted header
const maxPPMPixels = 1 << 26

// ErrInvalidPPM is returned for malformed PPM headers or truncated payloads
var ErrInvalidPPM = errors.New("loaders: invalid ppm")

// DecodePPM reads a binary (P6) or ASCII (P3) PPM image. Header comments are
// skipped and samples are rescaled from maxval to 0..255.
func DecodePPM(r io.Reader) (*scene.Texture, error) {
	br := bufio.NewReader(r)

	magic, err := ppmToken(br)
	if err != nil {
		return nil, err
	}
	if magic != "P3" && magic != "P6" {
		return nil, fmt.Errorf("%w: unsupported magic %q", ErrInvalidPPM, magic)
	}

	var header [3]int
	for i, field := range []string{"width", "height", "maxval"} {
		token, err := ppmToken(br)
		if err != nil {
			return nil, err
		}
		header[i], err = strconv.Atoi(token)
		if err != nil || header[i] <= 0 {
			return nil, fmt.Errorf("%w: bad %s %q", ErrInvalidPPM, field, token)
		}
	}
	width, height, maxval := header[0], header[1], header[2]
	if maxval > 65535 {
		return nil, fmt.Errorf("%w: maxval %d out of range", ErrInvalidPPM, maxval)
	}
	if width > maxPPMPixels/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidPPM, width, height, maxPPMPixels)
	}

	var next func() (int, error)
	if magic == "P3" {
		next = func() (int, error) {
			token, err := ppmToken(br)
			if err != nil {
				return 0, err
			}
			return strconv.Atoi(token)
		}
	} else {
		// A single whitespace byte separates the header from binary samples,
		// and ppmToken already consumed it
		wide := maxval > 255
		next = func() (int, error) {
			hi, err := br.ReadByte()
			if err != nil || !wide {
				return int(hi), err
			}
			lo, err := br.ReadByte()
			return int(hi)<<8 | int(lo), err
		}
	}

	pixels := make([]scene.Colour, width*height)
	for i := range pixels {
		var rgb [3]int
		for c := range rgb {
			v, err := next()
			if err != nil {
				return nil, fmt.Errorf("%w: pixel %d: %v", ErrInvalidPPM, i, err)
			}
			if v < 0 || v > maxval {
				return nil, fmt.Errorf("%w: pixel %d: sample %d exceeds maxval %d", ErrInvalidPPM, i, v, maxval)
			}
			rgb[c] = (v*255 + maxval/2) / maxval
		}
		pixels[i] = scene.NewColour(rgb[0], rgb[1], rgb[2])
	}

	return scene.NewTexture(width, height, pixels), nil
}

// ppmToken returns the next whitespace-delimited header token, skipping
// '#' comments through end of line. The delimiter after the token is consumed.
func ppmToken(br *bufio.Reader) (string, error) {
	var token []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(token) > 0 {
				return string(token), nil
			}
			return "", fmt.Errorf("%w: unexpected end of header", ErrInvalidPPM)
		}

		switch {
		case b == '#' && len(token) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", fmt.Errorf("%w: unterminated comment", ErrInvalidPPM)
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if len(token) > 0 {
				return string(token), nil
			}
		default:
			token = append(token, b)
		}
	}
}

// EncodePPM writes img as a binary P6 PPM with maxval 255
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if _, err := bw.Write([]byte{byte(r >> 8), byte(g >> 8), byte(b >> 8)}); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
