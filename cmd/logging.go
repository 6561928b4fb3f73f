package cmd

import (
	"github.com/df07/go-triangle-raytracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("trace")

// verbosity maps the global -v and -vv switches to a log level
func verbosity(ctx *cli.Context) log.Level {
	switch {
	case ctx.GlobalBool("vv"):
		return log.Debug
	case ctx.GlobalBool("v"):
		return log.Info
	default:
		return log.Notice
	}
}

func setupLogging(ctx *cli.Context) {
	log.SetLevel(verbosity(ctx))
}
