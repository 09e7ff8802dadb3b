package handlers

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the uniform success envelope.
// swagger:model APIResponse
type APIResponse struct {
	// HTTP status code mirrored into the body
	// default: 200
	StatusCode int `json:"statusCode"`

	// Always true for success responses
	// default: true
	Success bool `json:"success"`

	// Human-readable message
	// default: OK
	Message string `json:"message"`

	// Operation payload
	Data interface{} `json:"data,omitempty"`
}

// APIError is the uniform error envelope.
// swagger:model APIError
type APIError struct {
	// Always false for error responses
	// default: false
	Success bool `json:"success"`

	// Human-readable message
	// default: Internal server error
	Message string `json:"message"`
}

func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{
		StatusCode: status,
		Success:    true,
		Message:    message,
		Data:       data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIError{
		Success: false,
		Message: message,
	})
}
