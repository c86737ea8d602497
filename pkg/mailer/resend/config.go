package resend

// Config holds Resend provider configuration, parsed from env with caarlos0/env.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY" yaml:"api_key"`
	SenderEmail string `env:"RESEND_FROM_EMAIL" yaml:"from_email"`
	SenderName  string `env:"RESEND_FROM_NAME" yaml:"from_name"`
	BaseURL     string `env:"RESEND_BASE_URL" yaml:"base_url"` // Overrides the API endpoint, mostly for tests
}

// Configured reports whether an API key is present.
func (c Config) Configured() bool {
	return c.APIKey != ""
}
