package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-triangle-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Triangles", "Lights", "Description"})
	for _, name := range scene.BuiltinNames() {
		s, err := scene.Builtin(name, 0, 0)
		if err != nil {
			return err
		}
		table.Append([]string{
			name,
			fmt.Sprintf("%d", s.TriangleCount()),
			fmt.Sprintf("%d", len(s.Lights)),
			scene.BuiltinDescription(name),
		})
	}
	table.Render()

	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}
