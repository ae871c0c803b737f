package app

import (
	"context"

	"github.com/dmitrijs2005/sweetshop/internal/client/api"
	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

type AuthClient interface {
	Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error)
	Login(ctx context.Context, username, password string) (*models.AuthResponse, error)
}

type SweetsClient interface {
	List(ctx context.Context) ([]models.Sweet, error)
	Create(ctx context.Context, in models.SweetInput, token string) (*models.Sweet, error)
	Update(ctx context.Context, id int64, in models.SweetInput, token string) (*models.Sweet, error)
	Delete(ctx context.Context, id int64, token string) error
	Purchase(ctx context.Context, id int64, quantity int, token string) (*models.PurchaseResult, error)
	Restock(ctx context.Context, id int64, quantity int, token string) error
}

type PurchasesClient interface {
	History(ctx context.Context, token string) ([]models.Purchase, error)
	Get(ctx context.Context, id int64, token string) (*models.Purchase, error)
}

type StatsClient interface {
	Dashboard(ctx context.Context, token string) (models.DashboardStats, error)
	Sales(ctx context.Context, startDate, endDate, token string) (models.SalesReport, error)
}

// TokenStore persists the bearer token and the last username between runs.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	SaveSession(ctx context.Context, token, username string) error
	LastUsername(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Services bundles the remote collaborators of a Store.
type Services struct {
	Auth      AuthClient
	Sweets    SweetsClient
	Purchases PurchasesClient
	Stats     StatsClient
}

// ServicesFrom binds every resource client of c.
func ServicesFrom(c *api.Client) Services {
	return Services{
		Auth:      c.Auth,
		Sweets:    c.Sweets,
		Purchases: c.Purchases,
		Stats:     c.Stats,
	}
}
