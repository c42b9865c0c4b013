// Package lint runs a static-analysis linter over a working tree and
// reduces its output to an issue-density code quality score.
package lint

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mchmarny/modeltrust/pkg/score"
	log "github.com/sirupsen/logrus"
)

const linterCommand = "flake8"

// neutralScore is returned when the linter tooling is unavailable:
// no judgement either way.
const neutralScore = 0.5

// Runner invokes the linter subprocess.
type Runner struct {
	command string
}

// New returns a lint runner using the default linter.
func New() *Runner {
	return &Runner{command: linterCommand}
}

// ScoreTree lints the tree at dir and returns a [0,1] code quality
// score. Tooling that cannot start yields the neutral score; a linter
// that ran but produced only errors yields 0.
func (r *Runner) ScoreTree(ctx context.Context, dir string) float64 {
	files := countSourceFiles(dir)
	log.Debugf("found %d source files in %s", files, dir)

	cmd := exec.CommandContext(ctx, r.command, ".")
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		ee, ok := err.(*exec.ExitError)
		if !ok {
			// Linter missing or not executable.
			log.Debugf("linter unavailable: %v", err)
			return neutralScore
		}
		exitCode = ee.ExitCode()
	}

	issues := countIssueLines(stdout.String())

	// Exit 0 and 1 both mean the linter ran; 1 with no findings means
	// it errored before producing output.
	switch {
	case exitCode > 1:
		log.Debugf("linter failed (exit %d): %s", exitCode, strings.TrimSpace(stderr.String()))
		return 0
	case exitCode == 1 && issues == 0:
		log.Debugf("linter errored without output: %s", strings.TrimSpace(stderr.String()))
		return 0
	}

	log.Debugf("linter found %d issues across %d files", issues, files)
	return score.CodeQuality(issues, files)
}

func countIssueLines(out string) int {
	issues := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			issues++
		}
	}
	return issues
}

func countSourceFiles(dir string) int {
	files := 0
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".py") {
			files++
		}
		return nil
	})
	return files
}
