package recaptcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Verifier checks reCAPTCHA tokens against Google's siteverify endpoint.
// Verification failure is always reported as false, never as an error:
// the pipeline decides what a false means.
type Verifier struct {
	client    *http.Client
	verifyURL string
	secretKey string
	logger    *zap.Logger
}

// siteverifyResponse represents Google's verification response. Covers both
// v2 (boolean) and v3 (boolean plus score) payloads.
type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	ErrorCodes []string `json:"error-codes"`
}

// NewVerifier creates a new reCAPTCHA verifier
func NewVerifier(secretKey string, verifyURL string, timeout time.Duration, logger *zap.Logger) *Verifier {
	return &Verifier{
		client:    &http.Client{Timeout: timeout},
		verifyURL: verifyURL,
		secretKey: secretKey,
		logger:    logger,
	}
}

// Verify reports whether the token passed verification. A single attempt is
// made; timeouts and transport errors count as not verified.
func (v *Verifier) Verify(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	form := url.Values{}
	form.Set("secret", v.secretKey)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		v.logger.Warn("Failed to build reCAPTCHA verification request", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Warn("reCAPTCHA verification request failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.Warn("reCAPTCHA verification returned non-success status",
			zap.Int("status", resp.StatusCode))
		return false
	}

	var payload siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		v.logger.Warn("Failed to decode reCAPTCHA verification response", zap.Error(err))
		return false
	}

	if !payload.Success && len(payload.ErrorCodes) > 0 {
		v.logger.Debug("reCAPTCHA verification rejected token",
			zap.Strings("error_codes", payload.ErrorCodes))
	}

	return payload.Success
}
