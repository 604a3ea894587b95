package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Publish pushes a message onto the room's Redis channel so every gateway
// process subscribed to that room fans it out to its local members.
func Publish(ctx context.Context, roomID, senderID, text, timestamp string) error {
	return publishMessage(ctx, redisClient, &WSMessage{
		Event:     EventNewMessage,
		RoomID:    roomID,
		Sender:    senderID,
		Text:      text,
		Timestamp: timestamp,
	})
}

func publishMessage(ctx context.Context, client *redis.Client, msg *WSMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling message for room %s: %w", msg.RoomID, err)
	}

	if err := client.Publish(ctx, msg.RoomID, payload).Err(); err != nil {
		return fmt.Errorf("publishing to room channel %s: %w", msg.RoomID, err)
	}
	return nil
}
