package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/thanhnp/psbt-apis/internal/config"
	"github.com/thanhnp/psbt-apis/pkg/semver"
)

var configFlag = &cli.StringFlag{
	Name:    "config",
	Usage:   "path to configuration file, a missing file means defaults",
	Value:   "config.yaml",
	EnvVars: []string{"PSBT_CONFIG"},
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("error: %v", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = semver.AppVersion()
	app.Name = "psbt"
	app.Usage = "Summarize partially signed bitcoin transactions"
	app.Flags = append(app.Flags, configFlag)
	app.Commands = append(app.Commands, &parseCommand, &invokeCommand)

	app.Before = func(ctx *cli.Context) error {
		cfg, err := config.Load(ctx.String(configFlag.Name))
		if err != nil {
			return err
		}
		level, _ := log.ParseLevel(cfg.LogLevel)
		log.SetLevel(level)
		log.SetOutput(ctx.App.ErrWriter)

		ctx.App.Metadata = map[string]interface{}{"config": cfg}
		return nil
	}

	return app
}

func getConfig(ctx *cli.Context) *config.Config {
	if cfg, ok := ctx.App.Metadata["config"].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}
