package response

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type StandardApiResponse struct {
	Status     string      `json:"status"`               // "success" or "error"
	StatusCode int         `json:"status_code"`          // HTTP status code
	Message    string      `json:"message"`              // Human-readable message
	RequestID  string      `json:"request_id,omitempty"` // Echo of X-Request-ID
	Data       interface{} `json:"data,omitempty"`       // Payload for success
	Errors     interface{} `json:"errors,omitempty"`     // Validation or error details
}
