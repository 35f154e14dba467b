package dto

// SuccessResponse wraps every successful API response
type SuccessResponse struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Success bool     `json:"success"`
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Pagination describes the position of a ledger page
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// OK builds a success envelope
func OK(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

// Fail builds an error envelope
func Fail(code int, message string, errors ...string) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Message: message, Errors: errors}
}
