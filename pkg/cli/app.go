// Package cli wires the scoring pipeline into a command line app.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mchmarny/modeltrust/pkg/config"
	"github.com/mchmarny/modeltrust/pkg/logging"
	log "github.com/sirupsen/logrus"
	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	appConfigKey = "app-config"

	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	outputFormat = formatJSON

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format for single-model queries [json, yaml]",
		Value: formatJSON,
	}
)

// Execute creates and runs the CLI application. Exit-coded errors
// (e.g. empty input) are handled inside Run; anything else is fatal.
func Execute() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Errorf("fatal error: %v", err)
		os.Exit(1)
	}
}

type appConfig struct {
	Conf    *config.Config
	HomeDir string
	Debug   bool
}

func getConfig(c *urfave.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp() *urfave.App {
	return &urfave.App{
		Name:                 "modeltrust",
		Version:              fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "CLI for scoring the trustworthiness of ML models",
		Flags: []urfave.Flag{
			debugFlag,
			formatFlag,
		},
		Commands: []*urfave.Command{
			scoreCmd,
			modelCmd,
			authCmd,
		},
		Before: func(c *urfave.Context) error {
			homeDir, _, err := config.GetOrCreateHomeDir(config.DirName)
			if err != nil {
				return fmt.Errorf("resolving config dir: %w", err)
			}

			conf, err := config.ReadOrCreate(homeDir)
			if err != nil {
				return fmt.Errorf("reading config: %w", err)
			}

			level := conf.LogLevel
			if c.Bool(debugFlag.Name) {
				level = "debug"
			}
			if err := logging.Setup(level, conf.LogFile); err != nil {
				return fmt.Errorf("initializing logging: %w", err)
			}

			f := c.String(formatFlag.Name)
			if f == formatYAML || f == "yml" {
				outputFormat = formatYAML
			}

			c.App.Metadata[appConfigKey] = &appConfig{
				Conf:    conf,
				HomeDir: homeDir,
				Debug:   c.Bool(debugFlag.Name),
			}
			return nil
		},
	}
}

func encode(v any) error {
	if outputFormat == formatYAML {
		return yaml.NewEncoder(os.Stdout).Encode(v)
	}
	e := json.NewEncoder(os.Stdout)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
