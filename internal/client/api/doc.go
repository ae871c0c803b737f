// Package api is the client side of the sweet shop REST API.
//
// # Overview
//
// Transport performs a single JSON round trip: it sets the JSON content type,
// attaches "Authorization: Bearer <token>" when a token is supplied, sends a
// body only for POST/PUT/PATCH and normalises the outcome. Any non-2xx status
// or network failure comes back as *Error carrying a human-readable message.
// There are no retries.
//
// The resource clients (AuthAPI, SweetsAPI, PurchasesAPI, StatsAPI) bind a
// fixed path and verb to Transport.Do and hold no logic of their own. Client
// groups them:
//
//	c, err := api.New(api.Config{BaseURL: "http://localhost:8080", Logger: log})
//	sweets, err := c.Sweets.List(ctx)
//	res, err := c.Sweets.Purchase(ctx, id, 2, token)
//
// # Errors
//
// Use errors.As with *Error to read the HTTP status (0 for network failures).
package api
