package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/shadowine/contact-intake/internal/core"
)

const (
	contactSuccessMessage  = "Message received! 🚀 We'll get back to you faster than your coffee gets cold."
	workViewSuccessMessage = "Request received! We'll review your access request and get back to you shortly."
)

// intakeRequest is the JSON body shared by both intake endpoints
type intakeRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Message        string `json:"message"`
	WorkName       string `json:"workName"`
	RecaptchaToken string `json:"recaptchaToken"`
	Source         string `json:"source"`
	Page           string `json:"page"`
	IPAddress      string `json:"ipAddress"`
}

type successResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type throttledResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter"`
	ResetTime  string `json:"resetTime"`
}

// handleIntake builds the handler for one intake endpoint under the given
// pipeline policy
func (s *Server) handleIntake(pol core.Policy, successMessage string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

		var req intakeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.logger.Debug("Failed to decode intake request body", zap.Error(err))
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body."})
			return
		}

		sub := &core.Submission{
			Name:              req.Name,
			Email:             req.Email,
			Phone:             req.Phone,
			Message:           req.Message,
			WorkName:          req.WorkName,
			VerificationToken: req.RecaptchaToken,
			Source:            req.Source,
			Page:              req.Page,
			ClientAddress:     resolveClientAddress(r, req.IPAddress),
			UserAgent:         userAgent(r),
		}

		result, err := s.pipeline.Process(r.Context(), sub, pol)
		if err != nil {
			s.writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, successResponse{
			Success:   true,
			Message:   successMessage,
			MessageID: result.MessageID,
		})
	}
}

// handleHealth reports process liveness
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps pipeline and limiter outcomes to HTTP responses. Internal
// detail never crosses this boundary; causes are already logged where they
// occurred.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var validationErr *core.ValidationError
	var verificationErr *core.VerificationError
	var throttledErr *core.ThrottledError
	var notificationErr *core.NotificationError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Reason})
	case errors.As(err, &verificationErr):
		status := http.StatusBadRequest
		if verificationErr.ConfigCause {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, errorResponse{Error: verificationErr.Reason})
	case errors.As(err, &throttledErr):
		retryAfter := int(throttledErr.RetryAfter.Seconds())
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		writeJSON(w, http.StatusTooManyRequests, throttledResponse{
			Error:      throttledErr.Error(),
			RetryAfter: retryAfter,
			ResetTime:  throttledErr.ResetAt.UTC().Format(rateLimitResetLayout),
		})
	case errors.As(err, &notificationErr):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: notificationErr.Error()})
	default:
		s.logger.Error("Unclassified intake error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to send email. Please try again later."})
	}
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
