// Package parleyd wires the parley daemon: options, config and the
// application scaffolding around the parlor server.
package parleyd

import (
	"fmt"

	"github.com/kiosk404/parley/internal/parlor"
	"github.com/kiosk404/parley/internal/parlor/config"
	"github.com/kiosk404/parley/internal/parlor/options"
	"github.com/kiosk404/parley/pkg/app"
	"github.com/kiosk404/parley/pkg/logger"
)

const (
	AppName = "parleyd"
)

func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	application := app.NewApp("parleyd",
		basename,
		app.WithOptions(opts),
		app.WithDescription(`The parleyd daemon hosts round-table conversations between LLM agents and streams them over SSE.`),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
	)
	return application
}

func run(opts *options.Options) app.RunFunc {
	return func(basename string) error {
		logPath := fmt.Sprintf("%s/%s.log", basename, basename)

		if err := logger.InitLog(logPath); err != nil {
			return err
		}
		defer logger.FlushLog()

		cfg, err := config.CreateConfigFromOptions(opts)
		if err != nil {
			return err
		}

		return parlor.Run(cfg)
	}
}
