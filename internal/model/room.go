package model

import "fmt"

// RoomItem carries an embedded message log next to the room metadata. The
// gateway appends to Messages by loading the whole item, pushing, and saving
// it back without a version check, so concurrent appends are last-writer-wins.
// The top-level Messages table (MessageItem) is a second, independent store
// written by the REST chat handlers; the two logs are not reconciled.
type RoomItem struct {
	RoomID    string        `dynamodbav:"roomId"`
	RoomName  string        `dynamodbav:"roomName"`
	TeacherID string        `dynamodbav:"teacherId"`
	Students  []string      `dynamodbav:"students,omitempty"`
	Messages  []RoomMessage `dynamodbav:"messages,omitempty"`
	CreatedAt string        `dynamodbav:"createdAt"`
	UpdatedAt string        `dynamodbav:"updatedAt"`
}

type RoomMessage struct {
	SenderID  string `dynamodbav:"senderId"`
	Text      string `dynamodbav:"text"`
	Timestamp string `dynamodbav:"timestamp"`
}

type MessageItem struct {
	PK        string `dynamodbav:"pk"`
	RoomID    string `dynamodbav:"roomId"`
	MessageID string `dynamodbav:"messageId"`
	SenderID  string `dynamodbav:"senderId"`
	Text      string `dynamodbav:"text"`
	CreatedAt string `dynamodbav:"createdAt"`
}

func MessagePK(roomID, messageID string) string {
	return fmt.Sprintf("%s#%s", roomID, messageID)
}
