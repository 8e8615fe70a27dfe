package models

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string
	Error   string
}

// ValidationErrorResponse carries the full field->message map for a
// rejected draft so callers can surface every violation at once
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// HealthCheckResponse returns the healthcheck response struct
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
