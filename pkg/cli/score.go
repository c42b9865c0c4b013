package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mchmarny/modeltrust/pkg/auth"
	"github.com/mchmarny/modeltrust/pkg/codehost"
	"github.com/mchmarny/modeltrust/pkg/gitrepo"
	"github.com/mchmarny/modeltrust/pkg/lint"
	"github.com/mchmarny/modeltrust/pkg/llm"
	"github.com/mchmarny/modeltrust/pkg/registry"
	"github.com/mchmarny/modeltrust/pkg/scorecard"
	log "github.com/sirupsen/logrus"
	urfave "github.com/urfave/cli/v2"
)

const exitCodeNoEntries = 2

var (
	inputFlag = &urfave.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "Path to the entry file (one code,dataset,model triple per line; default: stdin)",
	}

	outputFlag = &urfave.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Path to write NDJSON records to ('-' or empty: stdout)",
	}

	appendFlag = &urfave.BoolFlag{
		Name:  "append",
		Usage: "Append to the output file instead of truncating it",
	}

	workersFlag = &urfave.IntFlag{
		Name:  "workers",
		Usage: "Number of entries to process concurrently",
	}

	timeoutFlag = &urfave.DurationFlag{
		Name:  "timeout",
		Usage: "Overall run deadline (0 means no deadline)",
	}

	scoreCmd = &urfave.Command{
		Name:            "score",
		HideHelpCommand: true,
		Usage:           "Score a batch of model entries, one NDJSON record per entry",
		Flags: []urfave.Flag{
			inputFlag,
			outputFlag,
			appendFlag,
			workersFlag,
			timeoutFlag,
		},
		Action: cmdScore,
	}
)

func cmdScore(c *urfave.Context) error {
	cfg := getConfig(c)

	entries, err := readEntries(c.String(inputFlag.Name), c.Args().Slice())
	if err != nil {
		return fmt.Errorf("reading entries: %w", err)
	}
	if len(entries) == 0 {
		return urfave.Exit("no scoreable entries in input", exitCodeNoEntries)
	}

	ctx := c.Context
	if d := c.Duration(timeoutFlag.Name); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	o := newOrchestrator(ctx, cfg, c.Int(workersFlag.Name))

	start := time.Now()
	records := o.Run(ctx, entries)

	out, closer, err := openOutput(c.String(outputFlag.Name), c.Bool(appendFlag.Name))
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer closer()

	if err := scorecard.WriteNDJSON(out, records); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}

	log.Infof("wrote %d records in %s", len(records), time.Since(start).Round(time.Millisecond))
	return nil
}

// newOrchestrator assembles the pipeline collaborators from config
// and stored credentials. Missing credentials degrade the dependent
// stages instead of failing the run.
func newOrchestrator(ctx context.Context, cfg *appConfig, workers int) *scorecard.Orchestrator {
	conf := cfg.Conf

	ghToken, err := auth.Get(cfg.HomeDir, auth.KeyGitHubToken)
	if err != nil {
		log.Debugf("no GitHub token configured, using unauthenticated access: %v", err)
	}

	llmKey, err := auth.Get(cfg.HomeDir, auth.KeyLLMAPIKey)
	if err != nil {
		log.Debugf("no LLM API key configured, evaluator calls will fail: %v", err)
	}

	if workers < 1 {
		workers = conf.Workers
	}

	return scorecard.New(
		registry.New(conf.RegistryURL, conf.HTTPTimeout),
		codehost.New(ctx, ghToken, conf.HTTPTimeout),
		gitrepo.New(),
		lint.New(),
		llm.New(conf.LLMEndpoint, conf.LLMModel, llmKey, conf.LLMTimeout),
		scorecard.Options{
			Capacities:    conf.Capacities,
			MaxCapacityMB: conf.MaxCapacityMB,
			Workers:       workers,
		},
	)
}

// readEntries resolves the entry source: positional args win, then an
// input file, then stdin.
func readEntries(path string, args []string) ([]scorecard.Entry, error) {
	if len(args) > 0 {
		entries := make([]scorecard.Entry, 0, len(args))
		for _, a := range args {
			entries = append(entries, scorecard.ParseEntry(a))
		}
		return entries, nil
	}
	if path == "" {
		return scorecard.ReadEntries(os.Stdin)
	}
	return scorecard.ReadEntriesFile(path)
}

func openOutput(path string, appendTo bool) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}

	flags := os.O_CREATE | os.O_WRONLY
	if appendTo {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
