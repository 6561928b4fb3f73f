package cmd

import (
	"flag"
	"testing"

	"github.com/df07/go-triangle-raytracer/pkg/log"
	"github.com/urfave/cli"
)

func TestVerbosity(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected log.Level
	}{
		{"default", nil, log.Notice},
		{"verbose", []string{"-v"}, log.Info},
		{"very verbose", []string{"-vv"}, log.Debug},
		{"both", []string{"-v", "-vv"}, log.Debug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			global := flag.NewFlagSet("global", flag.ContinueOnError)
			global.Bool("v", false, "")
			global.Bool("vv", false, "")
			if err := global.Parse(tt.args); err != nil {
				t.Fatal(err)
			}

			app := cli.NewApp()
			ctx := cli.NewContext(app, flag.NewFlagSet("render", flag.ContinueOnError), cli.NewContext(app, global, nil))
			if got := verbosity(ctx); got != tt.expected {
				t.Errorf("Expected level %d, got %d", tt.expected, got)
			}
		})
	}
}
