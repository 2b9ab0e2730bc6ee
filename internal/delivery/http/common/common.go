package http_common

type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

const (
	SessionHeader = "X-Session-Token"

	MsgInternal   = "internal error"
	MsgBadRequest = "Invalid request format"
)
