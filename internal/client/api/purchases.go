package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

type PurchasesAPI struct {
	t caller
}

// History lists the purchases of the user identified by token.
func (p *PurchasesAPI) History(ctx context.Context, token string) ([]models.Purchase, error) {
	var out []models.Purchase
	if err := p.t.Do(ctx, http.MethodGet, "/api/purchases/history", nil, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *PurchasesAPI) Get(ctx context.Context, id int64, token string) (*models.Purchase, error) {
	var out models.Purchase
	if err := p.t.Do(ctx, http.MethodGet, fmt.Sprintf("/api/purchases/%d", id), nil, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
