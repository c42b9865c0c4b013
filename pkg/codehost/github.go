// Package codehost is the code-hosting collaborator: repository
// license, contributor commit counts, and README text from the GitHub
// API with a raw-content fallback.
package codehost

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v83/github"
	"github.com/mchmarny/modeltrust/pkg/net"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	nethttp "net/http"
)

const (
	repoURLPrefix  = "https://github.com/"
	rawContentHost = "https://raw.githubusercontent.com"

	contributorPageSize = 100
)

// Client fetches repository signals from the code host.
type Client struct {
	gh   *github.Client
	http *nethttp.Client
}

// New returns a code host client. An empty token yields an
// unauthenticated client subject to the public rate limit.
func New(ctx context.Context, token string, timeout time.Duration) *Client {
	hc := net.GetHTTPClient(timeout)
	if token != "" {
		hc = net.GetOAuthClient(ctx, token)
		hc.Timeout = timeout
	}
	return &Client{
		gh:   github.NewClient(hc),
		http: net.GetHTTPClient(timeout),
	}
}

// ParseRepoURL splits a GitHub repository URL into owner and repo.
func ParseRepoURL(url string) (owner, repo string, ok bool) {
	s := strings.TrimSuffix(strings.TrimSpace(url), "/")
	s = strings.TrimSuffix(s, ".git")
	rest, found := strings.CutPrefix(s, repoURLPrefix)
	if !found {
		return "", "", false
	}
	parts := strings.Split(rest, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// RepoLicense returns the SPDX license identifier reported by the
// code host for a repository.
func (c *Client) RepoLicense(ctx context.Context, owner, repo string) (string, error) {
	if owner == "" || repo == "" {
		return "", errors.New("owner and repo are required")
	}

	r, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return "", errors.Wrapf(err, "failed to get repo: %s/%s", owner, repo)
	}
	log.Debugf("got repo %s/%s, %s", owner, repo, rateInfo(&resp.Rate))

	lic := r.GetLicense().GetSPDXID()
	if lic == "" || lic == "NOASSERTION" {
		return "", nil
	}
	return lic, nil
}

// ContributorCommits returns per-contributor commit counts for a
// repository, used as the bus-factor input when no local history is
// available.
func (c *Client) ContributorCommits(ctx context.Context, owner, repo string) ([]int, error) {
	if owner == "" || repo == "" {
		return nil, errors.New("owner and repo are required")
	}

	opts := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: contributorPageSize},
	}

	counts := make([]int, 0)
	for {
		contributors, resp, err := c.gh.Repositories.ListContributors(ctx, owner, repo, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list contributors: %s/%s", owner, repo)
		}
		for _, contributor := range contributors {
			counts = append(counts, contributor.GetContributions())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.Debugf("got %d contributors for %s/%s", len(counts), owner, repo)
	return counts, nil
}

// Readme returns the repository README text: the API first, then the
// raw content host across the two conventional default branches. All
// paths failing yields an empty string.
func (c *Client) Readme(ctx context.Context, owner, repo string) string {
	if content, _, err := c.gh.Repositories.GetReadme(ctx, owner, repo, nil); err == nil {
		if text, err := content.GetContent(); err == nil && text != "" {
			return text
		}
	}

	return net.GetText(ctx, c.http,
		fmt.Sprintf("%s/%s/%s/main/README.md", rawContentHost, owner, repo),
		fmt.Sprintf("%s/%s/%s/master/README.md", rawContentHost, owner, repo),
	)
}

func rateInfo(r *github.Rate) string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("rate:%d/%d until:%s", r.Remaining, r.Limit, r.Reset.Format("15:04"))
}
