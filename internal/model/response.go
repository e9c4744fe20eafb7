package model

// Response is the JSON body written by every gateway endpoint
type Response struct {
	Data    interface{}       `json:"data,omitempty"`
	Error   *string           `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Message string            `json:"message"`
}
