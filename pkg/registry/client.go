// Package registry is the model registry collaborator: a thin client
// over the hosted catalog API for model and dataset metadata, card
// text, and per-file size probes.
package registry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mchmarny/modeltrust/pkg/net"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the hosted model catalog.
	DefaultBaseURL = "https://huggingface.co"

	// DatasetURLPrefix is the canonical shape of a dataset reference.
	DatasetURLPrefix = DefaultBaseURL + "/datasets/"
)

// Client fetches model and dataset metadata from the registry API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a registry client with the given per-call timeout.
// An empty baseURL selects the default hosted registry.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    net.GetHTTPClient(timeout),
	}
}

// BaseURL returns the registry root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetModel fetches model metadata for an owner/name identifier.
func (c *Client) GetModel(ctx context.Context, id string) (*Model, error) {
	if id == "" {
		return nil, errors.New("model id is required")
	}

	var m Model
	url := fmt.Sprintf("%s/api/models/%s", c.baseURL, id)
	if err := net.GetJSON(ctx, c.http, url, &m); err != nil {
		return nil, errors.Wrapf(err, "failed to get model: %s", id)
	}

	log.Debugf("got model %s (downloads: %d, likes: %d)", id, m.Downloads, m.Likes)
	return &m, nil
}

// GetDataset fetches dataset metadata for an owner/name identifier.
func (c *Client) GetDataset(ctx context.Context, id string) (*Dataset, error) {
	if id == "" {
		return nil, errors.New("dataset id is required")
	}

	var d Dataset
	url := fmt.Sprintf("%s/api/datasets/%s", c.baseURL, id)
	if err := net.GetJSON(ctx, c.http, url, &d); err != nil {
		return nil, errors.Wrapf(err, "failed to get dataset: %s", id)
	}

	log.Debugf("got dataset %s (downloads: %d)", id, d.Downloads)
	return &d, nil
}

// GetReadme fetches the model card text, trying the conventional raw
// paths in order. All candidates failing yields an empty string.
func (c *Client) GetReadme(ctx context.Context, id string) string {
	return net.GetText(ctx, c.http,
		fmt.Sprintf("%s/%s/raw/main/README.md", c.baseURL, id),
		fmt.Sprintf("%s/%s/raw/main/README", c.baseURL, id),
	)
}

// FileSize probes the size of one repository file via its resolve URL
// Content-Length.
func (c *Client) FileSize(ctx context.Context, id, filename string) (int64, error) {
	url := fmt.Sprintf("%s/%s/resolve/main/%s", c.baseURL, id, filename)
	return net.HeadContentLength(ctx, c.http, url)
}

// RepoURL returns the clonable repository URL for a model.
func (c *Client) RepoURL(id string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, id)
}
