package dto

type CreateRoomRequest struct {
	RoomName string `json:"roomName"`
}

type JoinRoomRequest struct {
	RoomID string `json:"roomId"`
}

type RoomMessageResponse struct {
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type RoomResponse struct {
	RoomID    string                `json:"roomId"`
	RoomName  string                `json:"roomName"`
	TeacherID string                `json:"teacherId"`
	Students  []string              `json:"students"`
	Messages  []RoomMessageResponse `json:"messages"`
	CreatedAt string                `json:"createdAt"`
	UpdatedAt string                `json:"updatedAt"`
}
