package cmd

import (
	"github.com/df07/go-triangle-raytracer/pkg/log"
	"github.com/df07/go-triangle-raytracer/pkg/renderer"
	"github.com/urfave/cli"
)

// RenderFrame ray traces a single frame with soft shadows and reflections.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(sceneOptionsFromContext(ctx))
	if err != nil {
		return err
	}

	pattern, err := renderer.SamplePatternByName(ctx.String("pattern"))
	if err != nil {
		return err
	}

	config := renderer.DefaultCompositorConfig()
	config.Pattern = pattern
	config.NumWorkers = ctx.Int("workers")
	if tileSize := ctx.Int("tile-size"); tileSize > 0 {
		config.TileSize = tileSize
	}
	if ctx.IsSet("max-depth") {
		config.Shading.MaxReflectionDepth = ctx.Int("max-depth")
	}

	logger.Noticef("rendering scene '%s' at %dx%d", sc.Name, sc.Width, sc.Height)
	frame, stats, err := renderer.NewCompositor(sc, config, log.Printer(logger)).Render()
	if err != nil {
		return err
	}

	displayRenderStats(stats)
	return writeFrame(frame, ctx.String("out"))
}
