package errormail

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the error mail settings. It is read once when the Service is
// built; changing it means building a new Service.
type Config struct {
	// MailTo receives every report. Empty disables alerting.
	MailTo string `yaml:"mail_to" env:"ERROR_MAIL_TO" validate:"omitempty,email"`

	// Suppress lists extra failure classifications that never alert,
	// on top of the default list.
	Suppress []string `yaml:"suppress" env:"ERROR_MAIL_SUPPRESS" envSeparator:"," validate:"dive,required"`

	// DefaultLocale is used when no locale is found in the request context.
	DefaultLocale string `yaml:"default_locale" env:"ERROR_MAIL_DEFAULT_LOCALE" default:"en" validate:"required"`

	// Locales are the languages the HTTP middleware negotiates against.
	// Defaults to DefaultLocale alone.
	Locales []string `yaml:"locales" env:"ERROR_MAIL_LOCALES" envSeparator:"," validate:"dive,required"`

	// ReportTemplate overrides DefaultReportTemplate.
	ReportTemplate string `yaml:"report_template" env:"ERROR_MAIL_REPORT_TEMPLATE"`

	// Note is an optional markdown footer rendered into the mail theme.
	Note string `yaml:"note" env:"ERROR_MAIL_NOTE"`
}

// Enabled reports whether reports will be sent at all.
func (c Config) Enabled() bool {
	return c.MailTo != ""
}

// SuppressionList returns the default list extended with c.Suppress.
func (c Config) SuppressionList() SuppressionList {
	return NewSuppressionList(append(DefaultSuppressionList().Names(), c.Suppress...)...)
}

// LoadConfig reads an optional YAML file, then applies environment overrides.
// An empty path or a missing file is not an error.
func LoadConfig(path string) (Config, error) {
	return loadConfig(path, env.Options{})
}

func loadConfig(path string, opts env.Options) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// Defaults come last; YAML and env values win.
	if err := defaults.Set(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: defaults: %v", ErrInvalidConfig, err)
	}
	if len(cfg.Locales) == 0 {
		cfg.Locales = []string{cfg.DefaultLocale}
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// validateConfig lists every invalid field as "Namespace: tag[=param]".
func validateConfig(cfg Config) error {
	err := configValidator.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		tag := fe.Tag()
		if fe.Param() != "" {
			tag += "=" + fe.Param()
		}
		fields = append(fields, fe.Namespace()+": "+tag)
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(fields, ", "))
}
