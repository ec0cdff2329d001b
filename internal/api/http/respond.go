package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/security"
)

// Envelope is the standard API response wrapper used across handlers.
type Envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// JSON writes a success response using the common envelope.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{Code: status, Message: message, Data: data})
}

// Error writes an error response with the shared envelope structure.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Code: status, Message: message})
}

// ValidationError writes a 422 with per-field messages.
func ValidationError(w http.ResponseWriter, details map[string]string) {
	write(w, http.StatusUnprocessableEntity, Envelope{
		Code:    http.StatusUnprocessableEntity,
		Message: "validation failed",
		Details: details,
	})
}

// DomainError maps the service error taxonomy to HTTP status codes. Nothing
// here is fatal; every failure is scoped to the one request.
func DomainError(w http.ResponseWriter, err error) {
	var invalidProposal *domain.InvalidProposalError
	var insufficient *domain.InsufficientCreditsError
	var settlement *domain.SettlementError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		Error(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrAlreadyResolved):
		Error(w, http.StatusConflict, "proposal already resolved")
	case errors.Is(err, domain.ErrInvalidRecipient):
		Error(w, http.StatusBadRequest, "recipient does not exist")
	case errors.Is(err, domain.ErrEmailTaken):
		Error(w, http.StatusConflict, "email already registered")
	case errors.As(err, &invalidProposal):
		Error(w, http.StatusBadRequest, invalidProposal.Error())
	case errors.As(err, &insufficient):
		Error(w, http.StatusPaymentRequired, insufficient.Error())
	case errors.As(err, &settlement):
		Error(w, http.StatusConflict, "settlement failed, proposal is still pending")
	case errors.Is(err, security.ErrInvalidToken), errors.Is(err, security.ErrExpiredToken), errors.Is(err, security.ErrWrongTokenType):
		Error(w, http.StatusUnauthorized, "invalid or expired token")
	default:
		logger.Error("Unhandled error in HTTP handler", "error", err)
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func write(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response payload", "error", err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}
