package config

// ServerConfig represents the configuration for the HTTP server
type ServerConfig struct {
	ListenAddress string
	MaxBodyBytes  int
}

// RateLimitConfig represents the configuration for the rate limiter
type RateLimitConfig struct {
	Backend        string
	MaxRequests    int
	RedisAddr      string
	RedisKeyPrefix string
}

// RecaptchaConfig represents the configuration for reCAPTCHA verification
type RecaptchaConfig struct {
	SecretKey string
	VerifyURL string
}

// EmailConfig represents the configuration for outbound notification email
type EmailConfig struct {
	Transport        string
	FromAddress      string
	RecipientAddress string
}

// SESConfig represents the configuration for the AWS SES transport
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// SMTPConfig represents the configuration for the SMTP transport
type SMTPConfig struct {
	Address  string
	Username string
	Password string
}

// GetServer returns the HTTP server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress: c.GetString("server.listen_address"),
		MaxBodyBytes:  c.GetInt("server.max_body_bytes"),
	}
}

// GetRateLimit returns the rate limiter configuration
func (c *Config) GetRateLimit() RateLimitConfig {
	return RateLimitConfig{
		Backend:        c.GetString("ratelimit.backend"),
		MaxRequests:    c.GetInt("ratelimit.max_requests"),
		RedisAddr:      c.GetString("ratelimit.redis_addr"),
		RedisKeyPrefix: c.GetString("ratelimit.redis_key_prefix"),
	}
}

// GetRecaptcha returns the reCAPTCHA configuration
func (c *Config) GetRecaptcha() RecaptchaConfig {
	return RecaptchaConfig{
		SecretKey: c.GetString("recaptcha.secret_key"),
		VerifyURL: c.GetString("recaptcha.verify_url"),
	}
}

// GetEmail returns the notification email configuration
func (c *Config) GetEmail() EmailConfig {
	return EmailConfig{
		Transport:        c.GetString("email.transport"),
		FromAddress:      c.GetString("email.from_address"),
		RecipientAddress: c.GetString("email.recipient_address"),
	}
}

// GetSES returns the AWS SES transport configuration
func (c *Config) GetSES() SESConfig {
	return SESConfig{
		Region:          c.GetString("email.ses.region"),
		AccessKeyID:     c.GetString("email.ses.access_key_id"),
		SecretAccessKey: c.GetString("email.ses.secret_access_key"),
	}
}

// GetSMTP returns the SMTP transport configuration
func (c *Config) GetSMTP() SMTPConfig {
	return SMTPConfig{
		Address:  c.GetString("email.smtp.address"),
		Username: c.GetString("email.smtp.username"),
		Password: c.GetString("email.smtp.password"),
	}
}
