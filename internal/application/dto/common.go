package dto

// ErrorResponse cuerpo de error HTTP. Retryable indica que nada se escribió y la
// misma petición puede repetirse.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}
