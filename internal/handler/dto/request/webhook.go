package request

// WebhookMessageRequest is the payload delivered to POST /webhook/receive.
type WebhookMessageRequest struct {
	Type      string         `json:"type" binding:"required"`
	Content   string         `json:"content" binding:"required"`
	UserID    string         `json:"user_id"`
	Timestamp string         `json:"timestamp"`
	Metadata  map[string]any `json:"metadata"`
}

// AgentQueryRequest is a direct question for the concierge.
type AgentQueryRequest struct {
	Message string         `json:"message" binding:"required"`
	UserID  string         `json:"user_id"`
	Context map[string]any `json:"context"`
}
