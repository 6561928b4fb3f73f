package cmd

import (
	"github.com/df07/go-triangle-raytracer/pkg/log"
	"github.com/df07/go-triangle-raytracer/pkg/renderer"
	"github.com/urfave/cli"
)

// PreviewFrame draws a flat-shaded or wireframe rasterised preview.
func PreviewFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(sceneOptionsFromContext(ctx))
	if err != nil {
		return err
	}

	config := renderer.DefaultRasterConfig()
	config.Wireframe = ctx.Bool("wireframe")

	frame, stats, err := renderer.NewRasterizer(sc, config, log.Printer(logger)).Render()
	if err != nil {
		return err
	}

	displayRenderStats(stats)
	return writeFrame(frame, ctx.String("out"))
}
