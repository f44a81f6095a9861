// Package api talks to the quiz server: GET /quiz for a fresh quiz and
// POST /grade for scoring.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizclient/internal/logging"
	"github.com/abhisek/quizclient/internal/quiz"
)

// RequestIDHeader carries the per-request id.
const RequestIDHeader = "X-Request-ID"

// Config holds the server endpoints.
type Config struct {
	QuizURL  string
	GradeURL string
	// Timeout bounds each request. Zero disables the timeout.
	Timeout time.Duration
	// ValidateQuiz checks quiz bodies against the payload schema before
	// decoding.
	ValidateQuiz bool
}

// Client issues quiz requests.
type Client struct {
	cfg       Config
	http      *http.Client
	logger    *slog.Logger
	requestID func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRequestIDs overrides request id generation.
func WithRequestIDs(gen func() string) Option {
	return func(c *Client) { c.requestID = gen }
}

// New creates a Client.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:       cfg,
		http:      &http.Client{Timeout: cfg.Timeout},
		logger:    logging.Discard(),
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchQuiz requests a fresh quiz. Responses are never served from a cache.
func (c *Client) FetchQuiz(ctx context.Context) (*quiz.Quiz, error) {
	body, err := c.do(ctx, http.MethodGet, c.cfg.QuizURL, nil)
	if err != nil {
		return nil, err
	}

	if c.cfg.ValidateQuiz {
		if err := quiz.ValidateQuizPayload(body); err != nil {
			return nil, err
		}
	}
	return quiz.DecodeQuiz(body)
}

// Grade submits answers and returns the server's grading.
func (c *Client) Grade(ctx context.Context, req quiz.GradeRequest) (*quiz.GradeResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode grade request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, c.cfg.GradeURL, payload)
	if err != nil {
		return nil, err
	}
	return quiz.DecodeGradeResult(body)
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	id := c.requestID()
	req.Header.Set(RequestIDHeader, id)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodGet {
		req.Header.Set("Cache-Control", "no-store")
	}

	log := c.logger.With("request_id", id, "method", method, "url", url)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed", "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	log.Debug("request done", "status_code", resp.StatusCode, "duration", time.Since(start).String(), "bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
