package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/contact-intake/")
	v.AddConfigPath("$HOME/.contact-intake")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("CONTACT_INTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.listen_address", "0.0.0.0:8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.max_body_bytes", 65536)

	// Rate limit defaults
	v.SetDefault("ratelimit.backend", "memory")
	v.SetDefault("ratelimit.max_requests", 2)
	v.SetDefault("ratelimit.window", "1h")
	v.SetDefault("ratelimit.sweep_frequency", "10m")
	v.SetDefault("ratelimit.redis_addr", "localhost:6379")
	v.SetDefault("ratelimit.redis_key_prefix", "intake:ratelimit:")

	// reCAPTCHA defaults
	v.SetDefault("recaptcha.secret_key", "")
	v.SetDefault("recaptcha.verify_url", "https://www.google.com/recaptcha/api/siteverify")
	v.SetDefault("recaptcha.timeout", "5s")

	// Per-endpoint verification policy
	v.SetDefault("endpoints.contact.require_verification", true)
	v.SetDefault("endpoints.work_view.require_verification", false)

	// Email defaults
	v.SetDefault("email.transport", "ses")
	v.SetDefault("email.from_address", "noreply@example.com")
	v.SetDefault("email.recipient_address", "")
	v.SetDefault("email.send_timeout", "10s")
	v.SetDefault("email.ses.region", "us-east-1")
	v.SetDefault("email.ses.access_key_id", "")
	v.SetDefault("email.ses.secret_access_key", "")
	v.SetDefault("email.smtp.address", "localhost:587")
	v.SetDefault("email.smtp.username", "")
	v.SetDefault("email.smtp.password", "")

	// Storage defaults
	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.sqlite_path", "/data/contact_submissions.db")
	v.SetDefault("storage.mysql_dsn", "user:password@tcp(localhost:3306)/contact_intake?parseTime=true")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
