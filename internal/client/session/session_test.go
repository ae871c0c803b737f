package session

import (
	"bytes"
	"context"
	"encoding/base64"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/sweetshop/internal/logging"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func mint(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return tok
}

// rawToken builds a token around an arbitrary payload string.
func rawToken(payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." + enc.EncodeToString([]byte(payload)) + ".sig"
}

func newCodec() (*Codec, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	return NewCodec(l, WithClock(func() time.Time { return fixedNow })), &buf
}

func TestParse_Claims(t *testing.T) {
	exp := fixedNow.Add(time.Hour).Unix()

	tests := []struct {
		name   string
		token  string
		want   Session
		hasExp bool
	}{
		{
			name:   "string claims from the shop backend",
			token:  mint(t, jwt.MapClaims{"username": "alice", "email": "a@x.org", "is_admin": "true", "user_id": "7", "exp": exp}),
			want:   Session{Username: "alice", Email: "a@x.org", IsAdmin: true, UserID: 7},
			hasExp: true,
		},
		{
			name:  "structured claims",
			token: mint(t, jwt.MapClaims{"username": "bob", "is_admin": true, "user_id": 12}),
			want:  Session{Username: "bob", IsAdmin: true, UserID: 12},
		},
		{
			name:  "admin flag only accepts true",
			token: mint(t, jwt.MapClaims{"username": "carol", "is_admin": "yes"}),
			want:  Session{Username: "carol"},
		},
		{
			name:  "false admin and missing id",
			token: mint(t, jwt.MapClaims{"username": "dave", "is_admin": false}),
			want:  Session{Username: "dave"},
		},
		{
			name:  "padded standard base64 payload",
			token: "x." + base64.StdEncoding.EncodeToString([]byte(`{"username":"eve","user_id":3}`)) + ".y",
			want:  Session{Username: "eve", UserID: 3},
		},
		{
			name:  "header is not inspected",
			token: "garbage." + base64.RawURLEncoding.EncodeToString([]byte(`{"username":"frank"}`)) + ".",
			want:  Session{Username: "frank"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.token)
			require.NoError(t, err)

			if tt.hasExp {
				require.NotNil(t, got.ExpiresAt)
				assert.Equal(t, exp, got.ExpiresAt.Unix())
			} else {
				assert.Nil(t, got.ExpiresAt)
			}
			got.ExpiresAt = nil
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "one segment", token: "abc"},
		{name: "two segments", token: "a.b"},
		{name: "four segments", token: "a.b.c.d"},
		{name: "payload not base64", token: "a.!!!.c"},
		{name: "payload not json", token: "a." + base64.RawURLEncoding.EncodeToString([]byte("hello")) + ".c"},
		{name: "payload is array", token: rawToken(`[1,2]`)},
		{name: "payload is null", token: rawToken(`null`)},
		{name: "exp not numeric", token: rawToken(`{"username":"x","exp":"tomorrow"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse(tt.token)
			require.Error(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestCodec_DecodeLogsAndReturnsNil(t *testing.T) {
	c, buf := newCodec()

	assert.Nil(t, c.Decode(context.Background(), "not-a-token"))
	assert.Contains(t, buf.String(), "token decode error")

	buf.Reset()
	assert.Nil(t, c.Decode(context.Background(), ""))
	assert.Empty(t, buf.String())
}

func TestCodec_IsValid(t *testing.T) {
	c, _ := newCodec()
	ctx := context.Background()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "empty", token: "", want: false},
		{name: "malformed", token: "a.b", want: false},
		{name: "non-json payload", token: rawToken("nope"), want: false},
		{name: "no exp is valid indefinitely", token: mint(t, jwt.MapClaims{"username": "a"}), want: true},
		{name: "future exp", token: mint(t, jwt.MapClaims{"exp": fixedNow.Add(time.Minute).Unix()}), want: true},
		{name: "past exp", token: mint(t, jwt.MapClaims{"exp": fixedNow.Add(-time.Minute).Unix()}), want: false},
		{name: "exp exactly now", token: mint(t, jwt.MapClaims{"exp": fixedNow.Unix()}), want: false},
		{name: "zero exp is treated as absent", token: rawToken(`{"exp":0}`), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsValid(ctx, tt.token))
		})
	}
}

func TestCodec_IsValid_PastExpiryProperty(t *testing.T) {
	c, _ := newCodec()
	for _, d := range []time.Duration{time.Second, time.Hour, 24 * time.Hour, 365 * 24 * time.Hour} {
		tok := mint(t, jwt.MapClaims{"username": "p", "exp": fixedNow.Add(-d).Unix()})
		assert.False(t, c.IsValid(context.Background(), tok), "expired %v ago", d)
	}
}

func TestCodec_IsValid_NumericStringExp(t *testing.T) {
	c, _ := newCodec()
	future := rawToken(`{"exp":"` + strconv.FormatInt(fixedNow.Add(time.Hour).Unix(), 10) + `"}`)
	past := rawToken(`{"exp":"` + strconv.FormatInt(fixedNow.Add(-time.Hour).Unix(), 10) + `"}`)

	assert.True(t, c.IsValid(context.Background(), future))
	assert.False(t, c.IsValid(context.Background(), past))
}
