package room

import (
	"context"
	"errors"
	"strings"

	"elearn-backend/internal/database"
	"elearn-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("room repository: not found")

type Repository interface {
	PutRoom(ctx context.Context, room model.RoomItem) error
	GetRoom(ctx context.Context, roomID string) (model.RoomItem, error)
	ListRooms(ctx context.Context) ([]model.RoomItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) PutRoom(ctx context.Context, room model.RoomItem) error {
	return r.db.Client.PutItem(ctx, model.RoomsTable, room)
}

func (r *DynamoRepository) GetRoom(ctx context.Context, roomID string) (model.RoomItem, error) {
	var room model.RoomItem
	err := r.db.Client.GetItem(
		ctx,
		model.RoomsTable,
		map[string]types.AttributeValue{
			"roomId": &types.AttributeValueMemberS{Value: roomID},
		},
		&room,
	)
	if err != nil {
		if isNotFoundError(err) {
			return model.RoomItem{}, ErrNotFound
		}
		return model.RoomItem{}, err
	}

	return room, nil
}

func (r *DynamoRepository) ListRooms(ctx context.Context) ([]model.RoomItem, error) {
	items, err := r.db.Client.ScanAll(ctx, model.RoomsTable)
	if err != nil {
		return nil, err
	}

	rooms := make([]model.RoomItem, 0, len(items))
	for _, item := range items {
		var room model.RoomItem
		if err := attributevalue.UnmarshalMap(item, &room); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	return rooms, nil
}

func isNotFoundError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}
