package dto

// MessageResponse carries a single human-readable message
type MessageResponse struct {
	Message string `json:"message" example:"Student updated successfully!"`
}

// NewMessageResponse creates a MessageResponse
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}
