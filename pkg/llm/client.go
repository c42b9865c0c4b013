// Package llm delegates qualitative metrics to an external
// large-language-model evaluator over a chat-completions API and
// parses its JSON-only responses defensively.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mchmarny/modeltrust/pkg/net"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultEndpoint is the evaluator service root.
	DefaultEndpoint = "https://genai.rcac.purdue.edu"

	// DefaultModel is the evaluator model name.
	DefaultModel = "llama3.1:latest"

	// DefaultTimeout bounds one evaluator call.
	DefaultTimeout = 15 * time.Second

	completionsPath = "/api/chat/completions"
)

// Client calls the LLM evaluator.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	http     *http.Client
}

// New returns an evaluator client. Empty endpoint and model select the
// defaults; the apiKey is sent as a bearer token.
func New(endpoint, model, apiKey string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		http:     net.GetHTTPClient(timeout),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// EvalRequest carries the context handed to the evaluator.
type EvalRequest struct {
	ModelRef    string
	Readme      string
	CodeURL     string
	DatasetLink string
}

// EvaluateMetrics asks the evaluator to score the qualitative metric
// set. Transport failures propagate to the caller; malformed content
// yields empty metrics.
func (c *Client) EvaluateMetrics(ctx context.Context, req EvalRequest) (Metrics, error) {
	content, err := c.complete(ctx, metricsPrompt(req))
	if err != nil {
		return Metrics{}, err
	}
	return parseMetrics(content), nil
}

// DiscoverDataset asks the evaluator to name the most relevant
// training dataset URL for the model. Returns the raw URL string (may
// be empty) and the evaluator-reported latency.
func (c *Client) DiscoverDataset(ctx context.Context, modelRef, readme string) (string, int, error) {
	content, err := c.complete(ctx, discoveryPrompt(modelRef, readme))
	if err != nil {
		return "", 0, err
	}
	return parseDiscovery(content)
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal evaluator request")
	}

	url := c.endpoint + completionsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "failed to create evaluator request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "evaluator call failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("evaluator returned status %d: %s", resp.StatusCode, string(b))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", errors.Wrap(err, "failed to decode evaluator response")
	}
	if len(cr.Choices) == 0 {
		return "", nil
	}

	log.Debugf("evaluator returned %d chars", len(cr.Choices[0].Message.Content))
	return cr.Choices[0].Message.Content, nil
}
