package chat

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"elearn-backend/internal/database"
	"elearn-backend/internal/model"
	"elearn-backend/internal/websocket"

	"github.com/google/uuid"
)

type Service struct {
	repo    Repository
	publish func(ctx context.Context, roomID, senderID, text, timestamp string) error
	now     func() time.Time
}

func New(db *database.Database) *Service {
	return &Service{
		repo:    NewDynamoRepository(db),
		publish: websocket.Publish,
		now:     time.Now,
	}
}

func NewWithRepository(
	repo Repository,
	publish func(ctx context.Context, roomID, senderID, text, timestamp string) error,
	now func() time.Time,
) *Service {
	if publish == nil {
		publish = func(context.Context, string, string, string, string) error { return nil }
	}
	if now == nil {
		now = time.Now
	}

	return &Service{
		repo:    repo,
		publish: publish,
		now:     now,
	}
}

// Send stores the message in the top-level Messages table and pushes it onto
// the room's Redis channel for live gateway members. This path does NOT touch
// the room's embedded message log; the two stores are independent.
func (s *Service) Send(ctx context.Context, params SendParams) (model.MessageItem, error) {
	roomID := strings.TrimSpace(params.RoomID)
	text := strings.TrimSpace(params.Text)

	if roomID == "" || text == "" {
		return model.MessageItem{}, newError(ErrorCodeValidation, "missing room id or text", nil)
	}

	if _, err := s.repo.GetRoom(ctx, roomID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.MessageItem{}, newError(ErrorCodeNotFound, "Room not found!", err)
		}
		return model.MessageItem{}, newError(ErrorCodeInternal, "failed to fetch room", err)
	}

	messageID := uuid.NewString()
	item := model.MessageItem{
		PK:        model.MessagePK(roomID, messageID),
		RoomID:    roomID,
		MessageID: messageID,
		SenderID:  params.SenderID,
		Text:      text,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.PutMessage(ctx, item); err != nil {
		return model.MessageItem{}, newError(ErrorCodeInternal, "failed to save message", err)
	}

	// The message is durable at this point; a failed publish only costs live
	// delivery, so it is logged and swallowed.
	if err := s.publish(ctx, roomID, params.SenderID, text, item.CreatedAt); err != nil {
		log.Printf("error publishing message %s to room channel %s: %v", messageID, roomID, err)
	}

	return item, nil
}

func (s *Service) List(ctx context.Context, roomID string) ([]model.MessageItem, error) {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return nil, newError(ErrorCodeValidation, "missing room id", nil)
	}

	messages, err := s.repo.ListMessages(ctx, roomID)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list messages", err)
	}

	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt < messages[j].CreatedAt
	})

	return messages, nil
}
