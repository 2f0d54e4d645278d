package utils

import "time"

type SuccessResponse struct {
	Success bool  `json:"success"`
	Data    any   `json:"data"`
	Meta    *Meta `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  []ValidationError `json:"fields,omitempty"`
}

type Meta struct {
	Timestamp time.Time `json:"timestamp"`
	Count     *int      `json:"count,omitempty"`
}

func CreateErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: APIError{
			Code:    code,
			Message: message,
		},
	}
}

// CreateValidationErrorResponse carries per-field messages next to the summary.
func CreateValidationErrorResponse(message string, fields []ValidationError) ErrorResponse {
	resp := CreateErrorResponse("VALIDATION_FAILED", message)
	resp.Error.Fields = fields
	return resp
}

func CreateSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Timestamp: time.Now(),
		},
	}
}

func CreateListResponse(data any, count int) SuccessResponse {
	resp := CreateSuccessResponse(data)
	resp.Meta.Count = &count
	return resp
}
