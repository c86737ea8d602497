package smtp

// Config holds SMTP relay configuration.
type Config struct {
	Host       string `env:"SMTP_HOST" yaml:"host"`
	Port       int    `env:"SMTP_PORT" yaml:"port"`
	Username   string `env:"SMTP_USERNAME" yaml:"username"`
	Password   string `env:"SMTP_PASSWORD" yaml:"password"`
	From       string `env:"SMTP_FROM" yaml:"from"` // Envelope sender, also used when the message has no From
	UseTLS     bool   `env:"SMTP_USE_TLS" yaml:"use_tls"`
	SkipVerify bool   `env:"SMTP_SKIP_VERIFY" yaml:"skip_verify"`
}

// Configured reports whether a relay host is present.
func (c Config) Configured() bool {
	return c.Host != ""
}

func (c Config) port() int {
	if c.Port == 0 {
		if c.UseTLS {
			return 465
		}
		return 25
	}
	return c.Port
}
