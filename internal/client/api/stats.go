package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

type StatsAPI struct {
	t caller
}

func (s *StatsAPI) Dashboard(ctx context.Context, token string) (models.DashboardStats, error) {
	var out models.DashboardStats
	if err := s.t.Do(ctx, http.MethodGet, "/api/admin/stats", nil, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Sales fetches the sales report between two YYYY-MM-DD dates.
func (s *StatsAPI) Sales(ctx context.Context, startDate, endDate, token string) (models.SalesReport, error) {
	v := url.Values{}
	v.Set("startDate", startDate)
	v.Set("endDate", endDate)

	var out models.SalesReport
	if err := s.t.Do(ctx, http.MethodGet, "/api/admin/sales?"+v.Encode(), nil, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}
