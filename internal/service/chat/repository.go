package chat

import (
	"context"
	"errors"
	"strings"

	"elearn-backend/internal/database"
	"elearn-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("chat repository: not found")

type Repository interface {
	PutMessage(ctx context.Context, msg model.MessageItem) error
	ListMessages(ctx context.Context, roomID string) ([]model.MessageItem, error)
	GetRoom(ctx context.Context, roomID string) (model.RoomItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) PutMessage(ctx context.Context, msg model.MessageItem) error {
	return r.db.Client.PutItem(ctx, model.MessagesTable, msg)
}

func (r *DynamoRepository) ListMessages(ctx context.Context, roomID string) ([]model.MessageItem, error) {
	items, err := r.db.Client.QueryItems(
		ctx,
		model.MessagesTable,
		aws.String("byRoom"),
		"roomId = :roomId",
		map[string]types.AttributeValue{
			":roomId": &types.AttributeValueMemberS{Value: roomID},
		},
		nil,
		nil,
	)
	if err != nil {
		return nil, err
	}

	messages := make([]model.MessageItem, 0, len(items))
	for _, item := range items {
		var msg model.MessageItem
		if err := attributevalue.UnmarshalMap(item, &msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, nil
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

func isNotFoundError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}
