// Package admissao is the remote sync adapter for the admissão backend.
// It translates the wizard's internal payloads to the Portuguese wire DTOs,
// performs one HTTP call per step submission, and classifies failures into
// the fixed error taxonomy. The adapter never mutates wizard state: marking
// a step complete and advancing is the caller's job.
package admissao

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/torralabs/torra-onboarding/internal/domain/entity"
)

// DefaultTimeout bounds every request so a stalled connection cannot hang
// the caller indefinitely.
const DefaultTimeout = 30 * time.Second

// TokenStore holds the auth credential. Cleared on a 401 per the error
// handling contract.
type TokenStore interface {
	Token() string
	Clear()
}

// MemoryTokenStore is a process-local TokenStore.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (m *MemoryTokenStore) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *MemoryTokenStore) Clear() {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
}

// Config holds the adapter configuration.
type Config struct {
	BaseURL    string
	EmployeeID string
	Timeout    time.Duration
	// UploadParallelism bounds concurrent document uploads in a batch.
	// Zero falls back to the default.
	UploadParallelism int
}

// Client is the admissão API adapter.
type Client struct {
	baseURL     string
	employeeID  string
	httpClient  *http.Client
	tokens      TokenStore
	logger      *zap.Logger
	uploadLimit int
}

// NewClient creates an adapter. A zero timeout falls back to DefaultTimeout.
func NewClient(cfg Config, tokens TokenStore, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	uploadLimit := cfg.UploadParallelism
	if uploadLimit <= 0 {
		uploadLimit = defaultUploadParallelism
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		employeeID:  cfg.EmployeeID,
		httpClient:  &http.Client{Timeout: timeout},
		tokens:      tokens,
		logger:      logger,
		uploadLimit: uploadLimit,
	}
}

// apiEnvelope is the backend's standard response shape.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
}

// StepResult is a successful step submission.
type StepResult struct {
	// Normalized is the server-echoed payload hydrated back into the
	// internal shape; nil when the server returned no body data.
	Normalized entity.StepPayload
	Message    string
}

// SubmitStep posts the payload for one step. No automatic retry: retrying
// is a user-initiated action driven by the returned error's kind.
func (c *Client) SubmitStep(ctx context.Context, step entity.Step, payload entity.StepPayload) (*StepResult, *Error) {
	if !step.Valid() || payload.Key() != step.Key() {
		return nil, newError(KindInvalidInput)
	}

	dto, err := toWire(payload)
	if err != nil {
		c.logger.Error("Wire mapping failed", zap.Int("step", int(step)), zap.Error(err))
		return nil, newError(KindInvalidInput)
	}
	body, err := json.Marshal(dto)
	if err != nil {
		return nil, newError(KindInvalidInput)
	}

	url := fmt.Sprintf("%s/api/admissao/%s/step%d/%s", c.baseURL, c.employeeID, int(step), step.Slug())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, newError(KindNetwork)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	env, apiErr := c.do(req, int(step))
	if apiErr != nil {
		return nil, apiErr
	}

	result := &StepResult{Message: env.Message}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		normalized, err := fromWire(step.Key(), env.Data)
		if err != nil {
			// A malformed echo does not undo an accepted submission.
			c.logger.Warn("Could not hydrate server response",
				zap.Int("step", int(step)), zap.Error(err))
		} else {
			result.Normalized = normalized
		}
	}
	return result, nil
}

// HydrateStep fetches the server's stored data for one step, for the
// reload path when local storage lags behind a submission from elsewhere.
func (c *Client) HydrateStep(ctx context.Context, step entity.Step) (entity.StepPayload, *Error) {
	if !step.Valid() {
		return nil, newError(KindInvalidInput)
	}

	url := fmt.Sprintf("%s/api/admissao/%s/step%d/%s", c.baseURL, c.employeeID, int(step), step.Slug())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newError(KindNetwork)
	}
	c.authorize(req)

	env, apiErr := c.do(req, int(step))
	if apiErr != nil {
		return nil, apiErr
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, newError(KindNotFound)
	}

	payload, err := fromWire(step.Key(), env.Data)
	if err != nil {
		c.logger.Warn("Could not hydrate server response", zap.Int("step", int(step)), zap.Error(err))
		return nil, newError(KindServer)
	}
	return payload, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// do runs the request and applies the shared classification rules.
func (c *Client) do(req *http.Request, step int) (*apiEnvelope, *Error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Request failed before a response was received",
			zap.Int("step", step), zap.Error(err))
		return nil, newError(KindNetwork)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, newError(KindNetwork)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind := classify(resp.StatusCode)
		if kind == KindUnauthorized && c.tokens != nil {
			c.tokens.Clear()
		}

		var env apiEnvelope
		var fieldErrors []string
		if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil && kind == KindInvalidInput {
			fieldErrors = env.Errors
		}
		c.logger.Warn("Step request rejected",
			zap.Int("step", step),
			zap.Int("status", resp.StatusCode),
			zap.String("kind", string(kind)))
		return nil, newError(kind, fieldErrors...)
	}

	var env apiEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warn("Unparseable success response", zap.Int("step", step), zap.Error(err))
		return nil, newError(KindServer)
	}
	return &env, nil
}
