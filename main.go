package main

import (
	"fmt"
	"os"

	"github.com/df07/go-triangle-raytracer/cmd"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	// The default "version, v" flag would shadow the global -v
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-triangle-raytracer"
	app.Usage = "render triangle mesh scenes with a ray tracer or a scanline rasterizer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "ray trace a single frame",
			Description: `
Trace a supersampled frame with mirror reflections and soft shadows. Sub-samples
are traced in parallel tiles, shadows are widened into penumbrae in screen space
and the sub-samples are blended into pixels with the selected sample pattern.`,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "pattern, p",
					Value: "tent",
					Usage: "sample pattern: tent, corner, single or uniformN",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "number of trace workers (0 uses every CPU)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 32,
					Usage: "trace tile size in pixels",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Value: 4,
					Usage: "maximum number of mirror bounces",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.png",
					Usage: "image filename for the rendered frame (.png or .ppm)",
				},
			}, cmd.SceneFlags...),
			Action: cmd.RenderFrame,
		},
		{
			Name:        "preview",
			Usage:       "rasterise a flat-shaded preview",
			Description: `Draw every triangle with its material colour using a depth-tested scanline rasterizer.`,
			Flags: append([]cli.Flag{
				cli.BoolFlag{
					Name:  "wireframe",
					Usage: "draw triangle edges only",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "preview.png",
					Usage: "image filename for the preview (.png or .ppm)",
				},
			}, cmd.SceneFlags...),
			Action: cmd.PreviewFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
