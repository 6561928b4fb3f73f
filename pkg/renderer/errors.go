package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-triangle-raytracer/pkg/scene"
)

var (
	// ErrInvalidDimensions is returned when a scene has a non-positive width or height
	ErrInvalidDimensions = errors.New("renderer: invalid image dimensions")

	// ErrInvalidFocalLength is returned when the focal length is not a positive finite number
	ErrInvalidFocalLength = errors.New("renderer: invalid focal length")

	// ErrInvalidSamplePattern is returned for malformed sub-sample patterns
	ErrInvalidSamplePattern = errors.New("renderer: invalid sample pattern")
)

func validateScene(s *scene.Scene) error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, s.Width, s.Height)
	}
	if !(s.FocalLength > 0) || math.IsInf(s.FocalLength, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFocalLength, s.FocalLength)
	}
	return nil
}
