package room

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"elearn-backend/internal/database"
	"elearn-backend/internal/model"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(db *database.Database) *Service {
	return &Service{
		repo: NewDynamoRepository(db),
		now:  time.Now,
	}
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{
		repo: repo,
		now:  now,
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (model.RoomItem, error) {
	roomName := strings.TrimSpace(params.RoomName)
	if roomName == "" {
		return model.RoomItem{}, newError(ErrorCodeValidation, "missing room name", nil)
	}

	now := s.now().UTC().Format(time.RFC3339)
	item := model.RoomItem{
		RoomID:    uuid.NewString(),
		RoomName:  roomName,
		TeacherID: params.TeacherID,
		Students:  []string{},
		Messages:  []model.RoomMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.PutRoom(ctx, item); err != nil {
		return model.RoomItem{}, newError(ErrorCodeInternal, "failed to save room", err)
	}

	return item, nil
}

// Join appends the user to the room's student list. Joining twice is a no-op.
func (s *Service) Join(ctx context.Context, userID, roomID string) (model.RoomItem, error) {
	item, err := s.Get(ctx, roomID)
	if err != nil {
		return model.RoomItem{}, err
	}

	for _, student := range item.Students {
		if student == userID {
			return item, nil
		}
	}

	item.Students = append(item.Students, userID)
	item.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.repo.PutRoom(ctx, item); err != nil {
		return model.RoomItem{}, newError(ErrorCodeInternal, "failed to save room", err)
	}

	return item, nil
}

// Get returns the room with its embedded message log in append order.
func (s *Service) Get(ctx context.Context, roomID string) (model.RoomItem, error) {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return model.RoomItem{}, newError(ErrorCodeValidation, "missing room id", nil)
	}

	item, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.RoomItem{}, newError(ErrorCodeNotFound, "Room not found!", err)
		}
		return model.RoomItem{}, newError(ErrorCodeInternal, "failed to fetch room", err)
	}

	return item, nil
}

func (s *Service) List(ctx context.Context) ([]model.RoomItem, error) {
	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list rooms", err)
	}

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].CreatedAt < rooms[j].CreatedAt
	})

	return rooms, nil
}

// AppendMessage loads the whole room item, pushes onto the embedded log, and
// saves it back without a version check. Two concurrent appends can lose one
// of them; that trade-off is accepted for this log. The room's student list
// is not consulted: the live gateway decides who hears the message.
func (s *Service) AppendMessage(ctx context.Context, roomID string, msg model.RoomMessage) error {
	item, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return newError(ErrorCodeNotFound, "Room not found!", err)
		}
		return newError(ErrorCodeInternal, "failed to fetch room", err)
	}

	item.Messages = append(item.Messages, msg)
	item.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.repo.PutRoom(ctx, item); err != nil {
		return newError(ErrorCodeInternal, "failed to save room message", err)
	}

	return nil
}
