package cli

import (
	"fmt"

	"github.com/mchmarny/modeltrust/pkg/scorecard"
	urfave "github.com/urfave/cli/v2"
)

var modelCmd = &urfave.Command{
	Name:            "model",
	HideHelpCommand: true,
	Usage:           "Score a single model reference and print the record",
	ArgsUsage:       "<owner/model or registry URL>",
	Action:          cmdModel,
}

func cmdModel(c *urfave.Context) error {
	ref := c.Args().First()
	if ref == "" {
		return urfave.Exit("model reference required", 1)
	}

	cfg := getConfig(c)
	o := newOrchestrator(c.Context, cfg, 1)

	rec := o.ProcessEntry(c.Context, scorecard.Entry{ModelRef: ref})
	if err := encode(rec); err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return nil
}
