// Package session decodes the identity claims carried in a bearer token.
//
// The signature is never verified: a Session is only used to drive the UI
// (greeting, admin controls). Every privileged call is authorized by the
// server on its own.
package session

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/sweetshop/internal/logging"
)

var (
	ErrMalformed   = errors.New("token must have three dot-separated segments")
	ErrBadPayload  = errors.New("token payload is not valid JSON")
	ErrBadEncoding = errors.New("token payload is not base64")
)

// Session is the decoded view of a token. It is replaced as a whole and
// never modified in place.
type Session struct {
	Username string
	Email    string
	IsAdmin  bool
	UserID   int64
	// ExpiresAt is nil when the token carries no exp claim.
	ExpiresAt *time.Time
}

// ExpiredAt reports whether the session has expired at now. Sessions without
// an expiry never expire.
func (s *Session) ExpiredAt(now time.Time) bool {
	if s.ExpiresAt == nil {
		return false
	}
	return !now.Before(*s.ExpiresAt)
}

var parser = jwt.NewParser(jwt.WithPaddingAllowed())

func decodeSegment(seg string) ([]byte, error) {
	if b, err := parser.DecodeSegment(seg); err == nil {
		return b, nil
	}
	// Some issuers use the standard alphabet.
	if b, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(seg, "=")); err == nil {
		return b, nil
	}
	return nil, ErrBadEncoding
}

// Parse decodes the middle segment of token. Only that segment is inspected.
func Parse(token string) (*Session, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrMalformed
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if claims == nil {
		return nil, ErrBadPayload
	}

	s := &Session{}
	s.Username, _ = claims["username"].(string)
	s.Email, _ = claims["email"].(string)

	switch v := claims["is_admin"].(type) {
	case bool:
		s.IsAdmin = v
	case string:
		s.IsAdmin = v == "true"
	}

	if id, ok := number(claims["user_id"]); ok {
		s.UserID = int64(id)
	}

	if raw, present := claims["exp"]; present && raw != nil {
		exp, ok := number(raw)
		if !ok {
			return nil, fmt.Errorf("%w: exp claim %v", ErrBadPayload, raw)
		}
		if exp != 0 {
			sec, frac := math.Modf(exp)
			t := time.Unix(int64(sec), int64(frac*1e9))
			s.ExpiresAt = &t
		}
	}

	return s, nil
}

// number reads a JSON number or a string holding one.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// Codec wraps Parse with logging and a clock. Malformed tokens are logged
// and reported as nil; they never surface as errors.
type Codec struct {
	logger logging.Logger
	now    func() time.Time
}

type Option func(*Codec)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

func NewCodec(logger logging.Logger, opts ...Option) *Codec {
	if logger == nil {
		logger = logging.Nop()
	}
	c := &Codec{logger: logger, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Decode returns the session carried by token, or nil if it cannot be decoded.
func (c *Codec) Decode(ctx context.Context, token string) *Session {
	if token == "" {
		return nil
	}
	s, err := Parse(token)
	if err != nil {
		c.logger.Warn(ctx, "token decode error", "error", err)
		return nil
	}
	return s
}

// IsValid reports whether token decodes and has not expired.
func (c *Codec) IsValid(ctx context.Context, token string) bool {
	s := c.Decode(ctx, token)
	if s == nil {
		return false
	}
	return !s.ExpiredAt(c.now())
}
