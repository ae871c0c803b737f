package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

type AuthAPI struct {
	t caller
}

func (a *AuthAPI) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	req := models.RegisterRequest{Username: username, Email: email, Password: password}
	if err := a.t.Do(ctx, http.MethodPost, "/api/auth/register", req, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	req := models.LoginRequest{Username: username, Password: password}
	if err := a.t.Do(ctx, http.MethodPost, "/api/auth/login", req, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Validate asks the server whether token is still acceptable.
func (a *AuthAPI) Validate(ctx context.Context, token string) (*models.ValidateResponse, error) {
	var out models.ValidateResponse
	if err := a.t.Do(ctx, http.MethodPost, "/api/auth/validate", models.ValidateRequest{Token: token}, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
