package cart

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

var ErrNotFound = errors.New("cart repository: not found")

type Repository interface {
	ListCartItems(ctx context.Context, userID string) ([]model.CartItem, error)
	GetCartItem(ctx context.Context, userID, courseID string) (model.CartItem, error)
	PutCartItem(ctx context.Context, item model.CartItem) error
	DeleteCartItem(ctx context.Context, userID, courseID string) error
	GetCourse(ctx context.Context, courseID string) (model.CourseItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) ListCartItems(ctx context.Context, userID string) ([]model.CartItem, error) {
	items, err := r.db.Client.QueryItems(
		ctx,
		model.CartsTable,
		aws.String("byUser"),
		"userId = :userId",
		map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
		nil,
		nil,
	)
	if err != nil {
		return nil, err
	}

	cartItems := make([]model.CartItem, 0, len(items))
	for _, item := range items {
		var cartItem model.CartItem
		if err := attributevalue.UnmarshalMap(item, &cartItem); err != nil {
			return nil, err
		}
		cartItems = append(cartItems, cartItem)
	}

	return cartItems, nil
}

func (r *DynamoRepository) GetCartItem(ctx context.Context, userID, courseID string) (model.CartItem, error) {
	var item model.CartItem
	err := r.db.Client.GetItem(
		ctx,
		model.CartsTable,
		map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: model.CartPK(userID, courseID)},
		},
		&item,
	)
	if err != nil {
		if isNotFoundError(err) {
			return model.CartItem{}, ErrNotFound
		}
		return model.CartItem{}, err
	}

	return item, nil
}

func (r *DynamoRepository) PutCartItem(ctx context.Context, item model.CartItem) error {
	return r.db.Client.PutItem(ctx, model.CartsTable, item)
}

func (r *DynamoRepository) DeleteCartItem(ctx context.Context, userID, courseID string) error {
	return r.db.Client.DeleteItem(
		ctx,
		model.CartsTable,
		map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: model.CartPK(userID, courseID)},
		},
	)
}

func (r *DynamoRepository) GetCourse(ctx context.Context, courseID string) (model.CourseItem, error) {
	var course model.CourseItem
	err := r.db.Client.GetItem(
		ctx,
		model.CoursesTable,
		map[string]types.AttributeValue{
			"courseId": &types.AttributeValueMemberS{Value: courseID},
		},
		&course,
	)
	if err != nil {
		if isNotFoundError(err) {
			return model.CourseItem{}, ErrNotFound
		}
		return model.CourseItem{}, err
	}

	return course, nil
}

func isNotFoundError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}
