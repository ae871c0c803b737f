package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/dmitrijs2005/sweetshop/internal/logging"
)

// RequestIDHeader carries a per-call id that also appears in the logs.
const RequestIDHeader = "X-Request-ID"

// caller is the part of Transport the resource clients depend on.
type caller interface {
	Do(ctx context.Context, method, path string, body any, token string, out any) error
}

// Config configures a Transport.
type Config struct {
	BaseURL string
	// Timeout of zero means no deadline beyond the caller's context.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     logging.Logger
}

// Transport performs JSON calls against the shop API.
type Transport struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// NewTransport validates cfg and builds a Transport.
func NewTransport(cfg Config) (*Transport, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	return &Transport{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// Do performs one request. body is serialised as JSON for POST, PUT and PATCH
// only. On success a JSON response is decoded into out (when out is non-nil);
// a text response is stored when out is a *string and otherwise leaves out
// untouched. Failures are returned as *Error.
func (t *Transport) Do(ctx context.Context, method, path string, body any, token string, out any) error {
	requestID := uuid.NewString()
	log := t.logger.With("method", method, "path", path, "request_id", requestID)

	var reader io.Reader
	if body != nil && hasBody(method) {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Debug(ctx, "api call")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		log.Error(ctx, "api call failed", "error", err)
		return &Error{Message: fmt.Sprintf("request failed: %v", err), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(ctx, "api call failed", "status", resp.StatusCode, "error", err)
		return &Error{Status: resp.StatusCode, Message: fmt.Sprintf("read response: %v", err), Err: err}
	}

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(resp.StatusCode, raw, isJSON)
		log.Error(ctx, "api call failed", "status", resp.StatusCode, "error", msg)
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	log.Debug(ctx, "api call done", "status", resp.StatusCode)

	if out == nil {
		return nil
	}
	if isJSON {
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err), Err: err}
		}
		return nil
	}
	// A text body on success still means success; only a *string receives it.
	if s, ok := out.(*string); ok {
		*s = string(raw)
	}
	return nil
}

// errorMessage picks the most useful text from an error response: the
// "message" or "error" field of a JSON object, otherwise the raw body, and
// "HTTP <status>" as a last resort.
func errorMessage(status int, raw []byte, isJSON bool) string {
	if isJSON && gjson.ValidBytes(raw) {
		r := gjson.ParseBytes(raw)
		switch {
		case r.IsObject():
			for _, key := range []string{"message", "error"} {
				if v := r.Get(key); v.Exists() && v.String() != "" {
					return v.String()
				}
			}
			return "Unknown error"
		case r.IsArray():
			return "Unknown error"
		case r.Type == gjson.String:
			if r.String() != "" {
				return r.String()
			}
			return fmt.Sprintf("HTTP %d", status)
		}
	}

	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}
