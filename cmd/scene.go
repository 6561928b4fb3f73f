package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-triangle-raytracer/pkg/core"
	"github.com/df07/go-triangle-raytracer/pkg/loaders"
	"github.com/df07/go-triangle-raytracer/pkg/log"
	"github.com/df07/go-triangle-raytracer/pkg/scene"
	"github.com/urfave/cli"
)

const (
	defaultModelWidth  = 320
	defaultModelHeight = 240
)

// SceneFlags are shared by every command that builds a scene
var SceneFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "triangle",
		Usage: "built-in scene name (see the scenes command)",
	},
	cli.StringFlag{
		Name:  "model, m",
		Usage: "load a wavefront .obj or .ply model instead of a built-in scene",
	},
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width (0 selects the scene default)",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height (0 selects the scene default)",
	},
	cli.Float64Flag{
		Name:  "scale",
		Value: 1,
		Usage: "model vertex scale factor",
	},
	cli.BoolFlag{
		Name:  "smooth",
		Usage: "compute smooth vertex normals for models without them",
	},
	cli.StringFlag{
		Name:  "eye",
		Value: "0,1,4",
		Usage: "model camera position as x,y,z",
	},
	cli.StringFlag{
		Name:  "target",
		Value: "0,1,0",
		Usage: "model camera look-at point as x,y,z",
	},
	cli.Float64Flag{
		Name:  "focal",
		Usage: "model focal length in pixels (0 uses the frame width)",
	},
	cli.StringFlag{
		Name:  "light",
		Value: "0,3,2",
		Usage: "model light position as x,y,z",
	},
	cli.Float64Flag{
		Name:  "light-radius",
		Value: 0.3,
		Usage: "model light radius used for soft shadows",
	},
	cli.Float64Flag{
		Name:  "light-strength",
		Value: 60,
		Usage: "model light strength",
	},
	cli.StringSliceFlag{
		Name:  "mirror",
		Value: &cli.StringSlice{},
		Usage: "material name that reflects (default Yellow)",
	},
}

// sceneOptions mirrors SceneFlags
type sceneOptions struct {
	Builtin       string
	Model         string
	Width, Height int
	Scale         float64
	Smooth        bool
	Eye, Target   string
	Focal         float64
	Light         string
	LightRadius   float64
	LightStrength float64
	Mirrors       []string
}

func sceneOptionsFromContext(ctx *cli.Context) sceneOptions {
	return sceneOptions{
		Builtin:       ctx.String("scene"),
		Model:         ctx.String("model"),
		Width:         ctx.Int("width"),
		Height:        ctx.Int("height"),
		Scale:         ctx.Float64("scale"),
		Smooth:        ctx.Bool("smooth"),
		Eye:           ctx.String("eye"),
		Target:        ctx.String("target"),
		Focal:         ctx.Float64("focal"),
		Light:         ctx.String("light"),
		LightRadius:   ctx.Float64("light-radius"),
		LightStrength: ctx.Float64("light-strength"),
		Mirrors:       ctx.StringSlice("mirror"),
	}
}

// loadScene builds either a built-in scene or a model scene with a look-at
// camera and a single light
func loadScene(opts sceneOptions) (*scene.Scene, error) {
	if opts.Model == "" {
		s, err := scene.Builtin(opts.Builtin, opts.Width, opts.Height)
		if err != nil {
			return nil, fmt.Errorf("%w; available: %s", err, strings.Join(scene.BuiltinNames(), ", "))
		}
		return s, nil
	}

	eye, err := parseVec3(opts.Eye)
	if err != nil {
		return nil, fmt.Errorf("invalid eye: %w", err)
	}
	target, err := parseVec3(opts.Target)
	if err != nil {
		return nil, fmt.Errorf("invalid target: %w", err)
	}
	lightPos, err := parseVec3(opts.Light)
	if err != nil {
		return nil, fmt.Errorf("invalid light: %w", err)
	}

	objOptions := loaders.DefaultOBJOptions()
	objOptions.Scale = opts.Scale
	objOptions.SmoothNormals = opts.Smooth
	objOptions.Logger = log.New("loaders")
	if len(opts.Mirrors) > 0 {
		objOptions.MirrorMaterials = opts.Mirrors
	}

	objects, err := loaders.LoadModel(opts.Model, objOptions)
	if err != nil {
		return nil, err
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = defaultModelWidth
	}
	if height <= 0 {
		height = defaultModelHeight
	}
	focal := opts.Focal
	if focal <= 0 {
		focal = float64(width)
	}

	name := strings.TrimSuffix(filepath.Base(opts.Model), filepath.Ext(opts.Model))
	s := scene.NewScene(name, width, height, focal)
	s.Camera = scene.LookAt(eye, target, core.NewVec3(0, 1, 0))
	for _, obj := range objects {
		s.AddObject(obj)
	}
	s.AddLight(scene.NewLight(lightPos, opts.LightRadius, opts.LightStrength))

	return s, nil
}

// parseVec3 parses "x,y,z"
func parseVec3(value string) (core.Vec3, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return core.Vec3{}, errors.New("expected x,y,z")
	}

	var coords [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, err
		}
		coords[i] = v
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}
