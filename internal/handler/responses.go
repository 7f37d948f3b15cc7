package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ironloft/gymboard/internal/domain"
	"github.com/ironloft/gymboard/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// WebhookResponse is the acknowledgement body the board platform expects:
// a success boolean, with the error message populated on failure.
type WebhookResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent at this point, so just log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a service error and writes the mapped HTTP response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error("Operation failed", "operation", opName, "error", err)
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgResourceNotFoundErr = "Record not found"

	// Sync messages
	ErrMsgSyncInProgressError    = "A sync is already running for this entity type. Try again later."
	ErrMsgBoardUnavailableError  = "The board platform is temporarily unavailable. Try again later."
	ErrMsgBoardRateLimitedError  = "The board platform is rate limiting requests. Try again later."
	ErrMsgBoardNotConfiguredErr  = "No board is configured for this entity type"
	ErrMsgVersionConflictError   = "The record was modified by someone else. Reload and try again."
	ErrMsgUnknownEntityTypeError = "Unknown entity type"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, ErrMsgResourceNotFoundErr
	case errors.Is(err, domain.ErrUnknownEntityType):
		return http.StatusBadRequest, ErrMsgUnknownEntityTypeError
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, ErrMsgVersionConflictError
	case errors.Is(err, domain.ErrSyncInProgress):
		return http.StatusConflict, ErrMsgSyncInProgressError
	case errors.Is(err, domain.ErrBoardNotConfigured):
		return http.StatusBadRequest, ErrMsgBoardNotConfiguredErr
	case errors.Is(err, domain.ErrRemoteRateLimited):
		return http.StatusServiceUnavailable, ErrMsgBoardRateLimitedError
	case errors.Is(err, domain.ErrRemoteUnavailable), errors.Is(err, domain.ErrRemoteItemNotFound):
		return http.StatusBadGateway, ErrMsgBoardUnavailableError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
