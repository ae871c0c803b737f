package models

// PurchaseResult is the server's answer to a purchase.
type PurchaseResult struct {
	Message    string `json:"message"`
	TotalPrice Number `json:"total_price"`
	Quantity   Int    `json:"quantity"`
	SweetID    Int    `json:"sweet_id"`
}

// Purchase is one line of a user's purchase history.
type Purchase struct {
	ID          Int    `json:"id"`
	UserID      Int    `json:"user_id"`
	SweetID     Int    `json:"sweet_id"`
	SweetName   string `json:"sweet_name"`
	Quantity    Int    `json:"quantity"`
	TotalPrice  Number `json:"total_price"`
	PurchasedAt string `json:"purchase_date"`
}
