package api

// Client groups the resource clients over one Transport.
type Client struct {
	Auth      *AuthAPI
	Sweets    *SweetsAPI
	Purchases *PurchasesAPI
	Stats     *StatsAPI
}

// New builds a Transport from cfg and binds every resource client to it.
func New(cfg Config) (*Client, error) {
	t, err := NewTransport(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{
		Auth:      &AuthAPI{t: t},
		Sweets:    &SweetsAPI{t: t},
		Purchases: &PurchasesAPI{t: t},
		Stats:     &StatsAPI{t: t},
	}, nil
}
