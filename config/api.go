package config

import "time"

// APIConfig contains the upstream API endpoints this server talks to.
type APIConfig struct {
	// AuthBaseURL is the base URL of the credential-exchange API.
	AuthBaseURL string `env:"AUTH_API_URL" envDefault:"http://localhost:4000"`

	// ListingsBaseURL is the base URL of the listings API. Defaults to the
	// auth API host when unset.
	ListingsBaseURL string `env:"LISTINGS_API_URL" envDefault:""`

	// Timeout applies to every upstream request.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	if a.ListingsBaseURL == "" {
		a.ListingsBaseURL = a.AuthBaseURL
	}
	if a.Timeout <= 0 {
		a.Timeout = 15 * time.Second
	}
}
