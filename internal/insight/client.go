// Package insight talks to the hosted chat-completions endpoint and
// exposes the response as a stream of text fragments. Nothing is cached
// and nothing is persisted: every insight request re-queries the model.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"edascope/internal/config"
	"edascope/internal/errors"
)

// Streamer issues a streaming chat request
type Streamer interface {
	StreamChat(ctx context.Context, prompt string) (Stream, error)
}

// Client implements Streamer against an OpenAI-compatible endpoint
type Client struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client

	// RetryBackoff is the pause before the single retry of a transient
	// failure. Exposed so tests do not sleep.
	RetryBackoff time.Duration
}

// NewClient creates a client from the AI config section
func NewClient(cfg config.AI) *Client {
	return &Client{
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseURL,
		Model:        cfg.Model,
		Timeout:      cfg.Timeout,
		HTTPClient:   &http.Client{},
		RetryBackoff: 500 * time.Millisecond,
	}
}

// StreamChat sends the prompt with stream=true and returns the fragment
// stream. A missing API key fails before any network I/O. Connection
// errors and 5xx responses get exactly one retry; auth failures and other
// 4xx responses surface immediately.
func (c *Client) StreamChat(ctx context.Context, prompt string) (Stream, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.ConfigInvalid("model API key is not configured; set EDA_API_KEY to enable insights")
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.InvalidInput("empty prompt")
	}

	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type requestBody struct {
		Model    string    `json:"model"`
		Messages []message `json:"messages"`
		Stream   bool      `json:"stream"`
	}
	raw, err := json.Marshal(requestBody{
		Model:    c.Model,
		Messages: []message{{Role: "user", Content: prompt}},
		Stream:   true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			log.Printf("[Insight] Retrying model request after transient failure: %v", lastErr)
			select {
			case <-time.After(c.RetryBackoff):
			case <-ctx.Done():
				return nil, errors.ExternalServiceError("model", ctx.Err())
			}
		}

		stream, retryable, err := c.attempt(ctx, url, raw)
		if err == nil {
			return stream, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// attempt makes one request. The second return value reports whether the
// failure is transient (connection error or 5xx). On success the attempt
// context stays alive until the stream is closed, so the caller can keep
// receiving fragments under the configured timeout.
func (c *Client) attempt(ctx context.Context, url string, body []byte) (Stream, bool, error) {
	attemptCtx := ctx
	cancel := context.CancelFunc(func() {})
	if c.Timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, c.Timeout)
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, false, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		cancel()
		return nil, true, errors.ExternalServiceError("model", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		cancel()
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, false, errors.ConfigInvalid("model API key was rejected; check EDA_API_KEY")
		case resp.StatusCode >= 500:
			return nil, true, errors.ExternalServiceError("model",
				fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))))
		default:
			return nil, false, errors.ExternalServiceError("model",
				fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))))
		}
	}

	return &cancelStream{Stream: newSSEStream(resp.Body), cancel: cancel}, false, nil
}

// cancelStream releases the request context when the stream is closed
type cancelStream struct {
	Stream
	cancel context.CancelFunc
}

func (c *cancelStream) Close() error {
	err := c.Stream.Close()
	c.cancel()
	return err
}

// MockClient is a Streamer for tests
type MockClient struct {
	Fragments []string
	Err       error
	Calls     int
}

func (m *MockClient) StreamChat(ctx context.Context, prompt string) (Stream, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return &MockStream{Fragments: m.Fragments}, nil
}
