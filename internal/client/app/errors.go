package app

// ValidationError is a client-side input rejection. It never reaches the
// network and is not logged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

const (
	msgFillAllFields    = "Please fill in all fields"
	msgPasswordTooShort = "Password must be at least 6 characters"
	msgInvalidEmail     = "Please enter a valid email address"
	msgInvalidLogin     = "Invalid username or password"
	msgRequiredFields   = "Please fill in all required fields"
	msgInvalidQuantity  = "Please enter a valid quantity"
	msgInvalidDate      = "Dates must use the YYYY-MM-DD format"
	msgNoToken          = "No token received"
	msgNotFound         = "Sweet not found"
	msgLoadFailed       = "Failed to load sweets"
)
