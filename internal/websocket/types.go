package websocket

const (
	EventJoinRoom    = "joinRoom"
	EventSendMessage = "sendMessage"
	EventNewMessage  = "newMessage"
)

type Room struct {
	Id      string               `json:"id"`
	Clients map[string]*WSClient `json:"clients"`
}

// ClientEvent is the inbound envelope. A client-supplied senderId is accepted
// on the wire for compatibility but ignored; the identity bound at handshake
// time wins.
type ClientEvent struct {
	Event    string `json:"event"`
	RoomID   string `json:"roomId"`
	SenderID string `json:"senderId,omitempty"`
	Text     string `json:"text,omitempty"`
}

type WSMessage struct {
	Event     string `json:"event"`
	RoomID    string `json:"roomId"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type joinRequest struct {
	client *WSClient
	roomID string
}

type RoomRes struct {
	ID string `json:"id"`
}
