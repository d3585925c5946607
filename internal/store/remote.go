package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"goalpulse/internal/model"
)

// remoteStore talks to the hosted backend over JSON HTTP. It exists so the
// analytics engine stays backend-agnostic: the same Store interface is
// satisfied whether records live in the local database or behind the API.
type remoteStore struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewRemote builds the remote backend client.
func NewRemote(cfg Config) (Store, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("remote backend requires a base URL")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &remoteStore{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (r *remoteStore) Close() error { return nil }

func (r *remoteStore) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("backend authentication failed (%d)", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode backend response: %w", err)
		}
	}
	return nil
}

func (r *remoteStore) ListGoals(ctx context.Context) ([]model.Goal, error) {
	var goals []model.Goal
	if err := r.do(ctx, http.MethodGet, "/goals", nil, &goals); err != nil {
		return nil, err
	}
	log.Debug().Int("count", len(goals)).Msg("Fetched goals from backend")
	return goals, nil
}

func (r *remoteStore) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	log.Debug().Int("count", len(tasks)).Msg("Fetched tasks from backend")
	return tasks, nil
}

func (r *remoteStore) PutGoal(ctx context.Context, g model.Goal) error {
	return r.do(ctx, http.MethodPut, "/goals/"+url.PathEscape(g.ID), g, nil)
}

func (r *remoteStore) PutTask(ctx context.Context, t model.Task) error {
	return r.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(t.ID), t, nil)
}

func (r *remoteStore) DeleteGoal(ctx context.Context, id string) error {
	return r.do(ctx, http.MethodDelete, "/goals/"+url.PathEscape(id), nil, nil)
}

func (r *remoteStore) DeleteTask(ctx context.Context, id string) error {
	return r.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

func (r *remoteStore) GetValue(ctx context.Context, key string) (string, error) {
	var entry struct {
		Value string `json:"value"`
	}
	if err := r.do(ctx, http.MethodGet, "/kv/"+url.PathEscape(key), nil, &entry); err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (r *remoteStore) PutValue(ctx context.Context, key, value string) error {
	entry := struct {
		Value string `json:"value"`
	}{Value: value}
	return r.do(ctx, http.MethodPut, "/kv/"+url.PathEscape(key), entry, nil)
}
