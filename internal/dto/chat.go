package dto

type SendMessageRequest struct {
	RoomID string `json:"roomId"`
	Text   string `json:"text"`
}

type MessageResponse struct {
	MessageID string `json:"messageId"`
	RoomID    string `json:"roomId"`
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}
