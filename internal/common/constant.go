// Package common contains constants and sentinel errors shared by the client
// packages.
package common

// Keys of the local metadata table.
const (
	// TokenKey holds the bearer token of the current session.
	TokenKey = "authToken"
	// LastUserKey holds the username of the last successful login. It
	// outlives logout and prefills the next login prompt.
	LastUserKey = "lastUsername"
)

// LowStockThreshold is the quantity below which an item is marked as low.
const LowStockThreshold = 10
