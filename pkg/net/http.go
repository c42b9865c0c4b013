package net

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	maxIdleConns = 10
	clientAgent  = "modeltrust"

	// DefaultTimeout bounds every data fetch.
	DefaultTimeout = 10 * time.Second
)

var (
	reqTransport = &http.Transport{
		MaxIdleConns:          maxIdleConns,
		IdleConnTimeout:       60 * time.Second,
		DisableCompression:    true,
		DisableKeepAlives:     false,
		ResponseHeaderTimeout: 60 * time.Second,
	}

	// ErrNotFound indicates a 404 from the remote.
	ErrNotFound = errors.New("URL not found")
)

// GetHTTPClient returns a client sharing the package transport.
func GetHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Transport: reqTransport,
		Timeout:   timeout,
	}
}

// GetJSON retrieves the URL content and decodes it into the passed target.
func GetJSON[T any](ctx context.Context, client *http.Client, url string, target *T) error {
	resp, err := getResp(ctx, client, url)
	if err != nil {
		return errors.Wrap(err, "error executing HTTP Get request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error getting content (status: %d - %s): %s", resp.StatusCode, resp.Status, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.Wrap(err, "error decoding content")
	}
	return nil
}

// GetText tries each candidate URL in order and returns the body of
// the first 200 response. All candidates failing yields an empty
// string, never an error.
func GetText(ctx context.Context, client *http.Client, urls ...string) string {
	for _, url := range urls {
		resp, err := getResp(ctx, client, url)
		if err != nil {
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			continue
		}
		b, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			continue
		}
		return string(b)
	}
	return ""
}

// HeadContentLength issues a HEAD request and returns the advertised
// Content-Length, or 0 when the header is missing or unparseable.
func HeadContentLength(ctx context.Context, client *http.Client, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, errors.Wrap(err, "error creating HTTP Head request")
	}
	req.Header.Set("User-Agent", clientAgent)

	resp, err := client.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "error executing HTTP Head request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("error probing content length (status: %d): %s", resp.StatusCode, url)
	}

	cl := resp.Header.Get("Content-Length")
	if cl == "" {
		return 0, nil
	}
	size, err := strconv.ParseInt(cl, 10, 64)
	if err != nil || size < 0 {
		return 0, nil
	}
	return size, nil
}

func getResp(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "error creating HTTP Get request")
	}
	req.Header.Set("User-Agent", clientAgent)
	return client.Do(req)
}
