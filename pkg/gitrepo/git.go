// Package gitrepo shells out to git for the signals the registry and
// code host APIs cannot provide: contributor commit history, LFS file
// sizes, and local weight-file footprints.
package gitrepo

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// weightExtensions are the known model weight file suffixes.
var weightExtensions = []string{".bin", ".h5", ".ckpt", ".safetensors"}

// Client runs git subprocesses rooted at entry-scoped directories.
type Client struct{}

// New returns a git subprocess client.
func New() *Client {
	return &Client{}
}

// Clone performs a no-checkout clone of url into dir. Used by the size
// fallback, which only needs LFS pointers, not a working tree.
func (c *Client) Clone(ctx context.Context, url, dir string) error {
	out, err := runGit(ctx, "", "clone", "--no-checkout", url, dir)
	if err != nil {
		return errors.Wrapf(err, "failed to clone %s: %s", url, out)
	}
	log.Debugf("cloned %s into %s", url, dir)
	return nil
}

// CloneCheckout clones url with a working tree, for lint and
// weight-size scans.
func (c *Client) CloneCheckout(ctx context.Context, url, dir string) error {
	out, err := runGit(ctx, "", "clone", url, dir)
	if err != nil {
		return errors.Wrapf(err, "failed to clone %s: %s", url, out)
	}
	return nil
}

// ContributorCounts returns per-contributor commit counts for the
// repository at dir, parsed from git shortlog.
func (c *Client) ContributorCounts(ctx context.Context, dir string) ([]int, error) {
	out, err := runGit(ctx, dir, "shortlog", "-sne", "HEAD")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read commit history: %s", dir)
	}
	return parseShortlog(out), nil
}

// LFSFileSizes lists large-file-storage entries for the repository at
// dir, mapping filename to size in bytes.
func (c *Client) LFSFileSizes(ctx context.Context, dir string) (map[string]int64, error) {
	out, err := runGit(ctx, dir, "lfs", "ls-files", "-s")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list lfs files: %s", dir)
	}
	return parseLFSLines(strings.Split(out, "\n")), nil
}

// WeightFileBytes sums the sizes of model weight files under dir.
// Individual stat failures are skipped, not fatal.
func (c *Client) WeightFileBytes(dir string) int64 {
	var total int64
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil //nolint:nilerr // unreadable entries are skipped
		}
		if !isWeightFile(d.Name()) {
			return nil
		}
		if info, statErr := d.Info(); statErr == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}

func isWeightFile(name string) bool {
	for _, ext := range weightExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stderr.String(), err
	}
	return stdout.String(), nil
}
