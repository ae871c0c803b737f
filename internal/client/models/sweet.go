// Package models holds the data exchanged with the sweet shop API.
package models

// Sweet is a purchasable inventory record. The client only ever holds a
// read-only copy; the server owns the data.
type Sweet struct {
	ID          Int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       Number `json:"price"`
	Quantity    Int    `json:"quantity"`
}

// SweetInput is the request body for creating or updating a sweet.
type SweetInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// SearchParams narrows a server-side search. Nil price bounds are omitted
// from the query string.
type SearchParams struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// QuantityRequest is the body of purchase and restock calls.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}
