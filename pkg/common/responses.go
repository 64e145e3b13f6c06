// Package common holds helpers shared by the HTTP handlers.
package common

import (
	"encoding/json"
	"net/http"

	appErrors "reservation-backend/pkg/errors"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	response := APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// RespondError sends an error response
func RespondError(w http.ResponseWriter, status int, code, message string) {
	response := APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// RespondAppError maps a typed application error onto an HTTP status
func RespondAppError(w http.ResponseWriter, err error) {
	appErr := appErrors.GetAppError(err)
	if appErr == nil {
		RespondError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Type {
	case appErrors.ErrorTypeValidation:
		status = http.StatusBadRequest
	case appErrors.ErrorTypeNotFound:
		status = http.StatusNotFound
	case appErrors.ErrorTypeConditionFailed:
		status = http.StatusConflict
	case appErrors.ErrorTypeExternalAPI:
		status = http.StatusBadGateway
	}

	RespondError(w, status, string(appErr.Type), appErr.Message)
}
