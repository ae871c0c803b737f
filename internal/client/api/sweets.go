package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

type SweetsAPI struct {
	t caller
}

func sweetPath(id int64) string {
	return fmt.Sprintf("/api/sweets/%d", id)
}

func (s *SweetsAPI) List(ctx context.Context) ([]models.Sweet, error) {
	var out []models.Sweet
	if err := s.t.Do(ctx, http.MethodGet, "/api/sweets", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SweetsAPI) Get(ctx context.Context, id int64) (*models.Sweet, error) {
	var out models.Sweet
	if err := s.t.Do(ctx, http.MethodGet, sweetPath(id), nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchQuery encodes p as the query string of the search endpoint.
func SearchQuery(p models.SearchParams) string {
	v := url.Values{}
	v.Set("q", p.Query)
	v.Set("category", p.Category)
	if p.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*p.MinPrice, 'f', -1, 64))
	}
	if p.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64))
	}
	return v.Encode()
}

func (s *SweetsAPI) Search(ctx context.Context, p models.SearchParams) ([]models.Sweet, error) {
	var out []models.Sweet
	if err := s.t.Do(ctx, http.MethodGet, "/api/sweets/search?"+SearchQuery(p), nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create, Update, Delete and Restock are admin operations; the server
// decides whether token is allowed to perform them.
func (s *SweetsAPI) Create(ctx context.Context, in models.SweetInput, token string) (*models.Sweet, error) {
	var out models.Sweet
	if err := s.t.Do(ctx, http.MethodPost, "/api/sweets", in, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SweetsAPI) Update(ctx context.Context, id int64, in models.SweetInput, token string) (*models.Sweet, error) {
	var out models.Sweet
	if err := s.t.Do(ctx, http.MethodPut, sweetPath(id), in, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SweetsAPI) Delete(ctx context.Context, id int64, token string) error {
	return s.t.Do(ctx, http.MethodDelete, sweetPath(id), nil, token, nil)
}

func (s *SweetsAPI) Purchase(ctx context.Context, id int64, quantity int, token string) (*models.PurchaseResult, error) {
	var out models.PurchaseResult
	req := models.QuantityRequest{Quantity: quantity}
	if err := s.t.Do(ctx, http.MethodPost, sweetPath(id)+"/purchase", req, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SweetsAPI) Restock(ctx context.Context, id int64, quantity int, token string) error {
	req := models.QuantityRequest{Quantity: quantity}
	return s.t.Do(ctx, http.MethodPost, sweetPath(id)+"/restock", req, token, nil)
}
