package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Client generates an insights payload from an analytics snapshot.
type Client interface {
	Generate(ctx context.Context, req Request) (*Payload, error)
}

// Config holds the connection settings for the insights service.
type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
}

type httpClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates an HTTP client for the remote insights endpoint.
func NewClient(cfg Config) Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &httpClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Generate posts the snapshot to the service. Transport errors and 5xx
// responses get a single retry; client errors and malformed payloads do not.
func (c *httpClient) Generate(ctx context.Context, req Request) (*Payload, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode insights request: %w", err)
	}

	payload, retryable, err := c.post(ctx, body)
	if err != nil && retryable {
		log.Debug().Err(err).Msg("Retrying insights request once")
		payload, _, err = c.post(ctx, body)
	}
	return payload, err
}

func (c *httpClient) post(ctx context.Context, body []byte) (*Payload, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("insights service returned status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("insights service returned status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, false, fmt.Errorf("failed to decode insights response: %w", err)
	}
	if !env.Success {
		if env.Error != "" {
			return nil, false, fmt.Errorf("insights service error: %s", env.Error)
		}
		return nil, false, fmt.Errorf("insights service reported failure")
	}
	if env.Data == nil {
		return nil, false, fmt.Errorf("insights service returned success without data")
	}
	return env.Data, false, nil
}
