package dto

import "time"

// APIResponse is the standard response envelope. Success responses carry
// Message and Data; failures carry Message and, for server-side faults, the
// underlying error text in Error for diagnostics.
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewSuccessResponse creates a success envelope.
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorResponse creates a failure envelope with a user-facing message.
func NewErrorResponse(message string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewValidationErrorResponse creates a failure envelope carrying field-level errors.
func NewValidationErrorResponse(message string, fieldErrors []string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		Errors:    fieldErrors,
		Timestamp: time.Now(),
	}
}

// NewServerErrorResponse creates a failure envelope with diagnostic error text.
func NewServerErrorResponse(message string, err error) APIResponse {
	resp := APIResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now(),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// PaginationInfo describes the page window of a list response.
type PaginationInfo struct {
	CurrentPage int   `json:"page"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"limit"`
	TotalItems  int64 `json:"total"`
}

// PaginatedResponse represents a paginated list with metadata.
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
