package course

import (
	"context"
	"errors"
	"strings"

	"elearn-backend/internal/database"
	"elearn-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("course repository: not found")

type Repository interface {
	ListCourses(ctx context.Context) ([]model.CourseItem, error)
	GetCourse(ctx context.Context, courseID string) (model.CourseItem, error)
	PutCourse(ctx context.Context, course model.CourseItem) error
	DeleteCourse(ctx context.Context, courseID string) error
	AppendVideo(ctx context.Context, courseID, videoPath string) (model.CourseItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) ListCourses(ctx context.Context) ([]model.CourseItem, error) {
	items, err := r.db.Client.ScanAll(ctx, model.CoursesTable)
	if err != nil {
		return nil, err
	}

	courses := make([]model.CourseItem, 0, len(items))
	for _, item := range items {
		var course model.CourseItem
		if err := attributevalue.UnmarshalMap(item, &course); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	return courses, nil
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

func (r *DynamoRepository) PutCourse(ctx context.Context, course model.CourseItem) error {
	return r.db.Client.PutItem(ctx, model.CoursesTable, course)
}

func (r *DynamoRepository) DeleteCourse(ctx context.Context, courseID string) error {
	return r.db.Client.DeleteItem(
		ctx,
		model.CoursesTable,
		map[string]types.AttributeValue{
			"courseId": &types.AttributeValueMemberS{Value: courseID},
		},
	)
}

// AppendVideo uses list_append so concurrent uploads to the same course do
// not clobber each other the way a whole-item put would.
func (r *DynamoRepository) AppendVideo(ctx context.Context, courseID, videoPath string) (model.CourseItem, error) {
	var course model.CourseItem
	err := r.db.Client.UpdateItem(
		ctx,
		model.CoursesTable,
		map[string]types.AttributeValue{
			"courseId": &types.AttributeValueMemberS{Value: courseID},
		},
		"SET videos = list_append(if_not_exists(videos, :empty), :video)",
		map[string]types.AttributeValue{
			":video": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberS{Value: videoPath},
			}},
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
		},
		nil,
		&course,
	)
	if err != nil {
		return model.CourseItem{}, err
	}

	return course, nil
}

func isNotFoundError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}
