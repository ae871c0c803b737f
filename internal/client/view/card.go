package view

import (
	"github.com/dmitrijs2005/sweetshop/internal/client/models"
	"github.com/dmitrijs2005/sweetshop/internal/common"
)

// Stock is the stock-level marker of a card. The values double as CSS
// classes in the HTML rendering.
type Stock string

const (
	StockNormal     Stock = ""
	StockLow        Stock = "low"
	StockOutOfStock Stock = "out-of-stock"
)

const (
	purchaseLabel    = "Purchase"
	outOfStockLabel  = "Out of Stock"
	noDescriptionMsg = "No description available"
	emptyGridMsg     = "No sweets found"
)

// StockLevel classifies qty against common.LowStockThreshold.
func StockLevel(qty int64) Stock {
	switch {
	case qty == 0:
		return StockOutOfStock
	case qty < common.LowStockThreshold:
		return StockLow
	default:
		return StockNormal
	}
}

// Card is the display model of one sweet.
type Card struct {
	ID          int64
	Name        string
	Category    string
	Description string
	Price       float64
	Quantity    int64
	Stock       Stock
	// CanPurchase is false for out-of-stock items; PurchaseLabel follows it.
	CanPurchase   bool
	PurchaseLabel string
	// ShowAdmin enables the edit and delete controls.
	ShowAdmin bool
}

func NewCard(s models.Sweet, isAdmin bool) Card {
	qty := int64(s.Quantity)
	stock := StockLevel(qty)

	c := Card{
		ID:            int64(s.ID),
		Name:          s.Name,
		Category:      s.Category,
		Description:   s.Description,
		Price:         float64(s.Price),
		Quantity:      qty,
		Stock:         stock,
		CanPurchase:   stock != StockOutOfStock,
		PurchaseLabel: purchaseLabel,
		ShowAdmin:     isAdmin,
	}
	if c.Description == "" {
		c.Description = noDescriptionMsg
	}
	if !c.CanPurchase {
		c.PurchaseLabel = outOfStockLabel
	}
	return c
}

func NewCards(list []models.Sweet, isAdmin bool) []Card {
	cards := make([]Card, 0, len(list))
	for _, s := range list {
		cards = append(cards, NewCard(s, isAdmin))
	}
	return cards
}
