package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sweetshop/internal/common"
)

// TokenStore persists the bearer token under common.TokenKey and the last
// logged-in username under common.LastUserKey.
type TokenStore struct {
	repo Repository
}

func NewTokenStore(repo Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

func (s *TokenStore) get(ctx context.Context, key string) (string, error) {
	v, err := s.repo.Get(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Load returns the stored token or "" when none is saved.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	tok, err := s.get(ctx, common.TokenKey)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return tok, nil
}

// SaveSession stores token and username together. An empty token clears
// the stored one.
func (s *TokenStore) SaveSession(ctx context.Context, token, username string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	err := s.repo.SetMany(ctx, map[string][]byte{
		common.TokenKey:    []byte(token),
		common.LastUserKey: []byte(username),
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LastUsername returns the username of the last saved session, if any.
func (s *TokenStore) LastUsername(ctx context.Context) (string, error) {
	u, err := s.get(ctx, common.LastUserKey)
	if err != nil {
		return "", fmt.Errorf("load last username: %w", err)
	}
	return u, nil
}

// Clear drops the token; the last username is kept.
func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
