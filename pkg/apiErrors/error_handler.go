package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Error codes returned to clients
const (
	// Authentication errors (AUTH_*)
	ErrInvalidCredentials    = "AUTH_001" // Invalid credentials
	ErrUserDisabled          = "AUTH_002" // User disabled
	ErrUserNotFound          = "AUTH_003" // User not found
	ErrInvalidToken          = "AUTH_006" // Invalid token
	ErrExpiredToken          = "AUTH_007" // Expired token
	ErrInsufficientPrivilege = "AUTH_008" // Insufficient privileges
	ErrUserAlreadyExists     = "AUTH_009" // User already exists

	// Validation errors (VAL_*)
	ErrInvalidRequest      = "VAL_001" // Invalid request
	ErrMissingRequiredData = "VAL_002" // Required data missing
	ErrInvalidFormat       = "VAL_003" // Invalid data format, e.g. a non YYYY-MM-DD date

	// External connection errors (CONN_*)
	ErrNotConnected = "CONN_001" // No stored credential for a required external service

	// Conflict and lookup errors
	ErrStaleObject = "CONF_001" // Concurrent-modification conflict on an external record
	ErrNotFound    = "RES_001"  // Referenced entity absent

	// Server errors (SRV_*)
	ErrInternalServer    = "SRV_001" // Unexpected internal error
	ErrDatabaseOperation = "SRV_002" // Database operation error
	ErrExternalService   = "SRV_003" // External service error
)

// Error code to HTTP status mapping
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusBadRequest,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrNotConnected:          http.StatusUnauthorized,
	ErrStaleObject:           http.StatusConflict,
	ErrNotFound:              http.StatusNotFound,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
}

// APIError is the error payload inside the failure envelope
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// envelope is the uniform response shape for every endpoint
type envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// StatusForCode resolves the HTTP status for an error code
func StatusForCode(code string) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError writes the standard failure envelope
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusForCode(code))
	json.NewEncoder(w).Encode(envelope{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteSuccess writes the standard success envelope
func WriteSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(envelope{
		Success: true,
		Data:    data,
	})
}

// FromError wraps a Go error in an APIError with the given code
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "unknown error",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
