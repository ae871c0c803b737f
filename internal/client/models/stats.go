package models

// DashboardStats and SalesReport are rendered as key/value listings; their
// exact shape belongs to the server.
type DashboardStats map[string]any

type SalesReport map[string]any
