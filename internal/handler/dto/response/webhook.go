package response

// WebhookResponse is the envelope for all webhook endpoints.
type WebhookResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}
