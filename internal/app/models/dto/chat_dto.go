package dto

// AskRequest represents a free-text question posted to the chat endpoint
type AskRequest struct {
	Text string `json:"text" binding:"required,min=1"`
}
