package course

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

func (s *Service) List(ctx context.Context) ([]model.CourseItem, error) {
	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list courses", err)
	}

	sort.Slice(courses, func(i, j int) bool {
		return courses[i].CreatedAt < courses[j].CreatedAt
	})

	return courses, nil
}

// Search matches the title case-insensitively as a substring.
func (s *Service) Search(ctx context.Context, title string) ([]model.CourseItem, error) {
	needle := strings.ToLower(strings.TrimSpace(title))
	if needle == "" {
		return s.List(ctx)
	}

	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to search courses", err)
	}

	matched := make([]model.CourseItem, 0)
	for _, course := range courses {
		if strings.Contains(strings.ToLower(course.Title), needle) {
			matched = append(matched, course)
		}
	}

	return matched, nil
}

func (s *Service) Filter(ctx context.Context, params FilterParams) ([]model.CourseItem, error) {
	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to filter courses", err)
	}

	matched := make([]model.CourseItem, 0)
	for _, course := range courses {
		if params.Category != "" && !strings.EqualFold(course.Category, params.Category) {
			continue
		}
		if params.Teacher != "" && course.TeacherID != params.Teacher {
			continue
		}
		if params.MinPrice != nil && course.Price < *params.MinPrice {
			continue
		}
		if params.MaxPrice != nil && course.Price > *params.MaxPrice {
			continue
		}
		if params.MinRating != nil && course.Rating < *params.MinRating {
			continue
		}
		matched = append(matched, course)
	}

	return matched, nil
}

func (s *Service) Get(ctx context.Context, courseID string) (model.CourseItem, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return model.CourseItem{}, newError(ErrorCodeValidation, "missing course id", nil)
	}

	course, err := s.repo.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.CourseItem{}, newError(ErrorCodeNotFound, "Course not found!", err)
		}
		return model.CourseItem{}, newError(ErrorCodeInternal, "failed to fetch course", err)
	}

	return course, nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (model.CourseItem, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return model.CourseItem{}, newError(ErrorCodeValidation, "missing course title", nil)
	}
	if params.Price < 0 {
		return model.CourseItem{}, newError(ErrorCodeValidation, "price must not be negative", nil)
	}

	course := model.CourseItem{
		CourseID:    uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(params.Description),
		TeacherID:   params.TeacherID,
		Price:       params.Price,
		Category:    strings.TrimSpace(params.Category),
		Reviews:     []model.ReviewItem{},
		Videos:      []string{},
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
	}
	if videoURL := strings.TrimSpace(params.VideoURL); videoURL != "" {
		course.Videos = append(course.Videos, videoURL)
	}

	if err := s.repo.PutCourse(ctx, course); err != nil {
		return model.CourseItem{}, newError(ErrorCodeInternal, "failed to save course", err)
	}

	return course, nil
}

// Update is a whole-item replace of the mutable fields; last write wins.
func (s *Service) Update(ctx context.Context, teacherID, courseID string, params UpdateParams) (model.CourseItem, error) {
	course, err := s.ownedCourse(ctx, teacherID, courseID)
	if err != nil {
		return model.CourseItem{}, err
	}

	if title := strings.TrimSpace(params.Title); title != "" {
		course.Title = title
	}
	if description := strings.TrimSpace(params.Description); description != "" {
		course.Description = description
	}
	if category := strings.TrimSpace(params.Category); category != "" {
		course.Category = category
	}
	if params.Price != nil {
		if *params.Price < 0 {
			return model.CourseItem{}, newError(ErrorCodeValidation, "price must not be negative", nil)
		}
		course.Price = *params.Price
	}

	if err := s.repo.PutCourse(ctx, course); err != nil {
		return model.CourseItem{}, newError(ErrorCodeInternal, "failed to save course", err)
	}

	return course, nil
}

func (s *Service) Delete(ctx context.Context, teacherID, courseID string) error {
	course, err := s.ownedCourse(ctx, teacherID, courseID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteCourse(ctx, course.CourseID); err != nil {
		return newError(ErrorCodeInternal, "failed to delete course", err)
	}

	return nil
}

// AddReview appends a student review and recomputes the course rating as the
// plain average over all reviews.
func (s *Service) AddReview(ctx context.Context, courseID string, params ReviewParams) (model.CourseItem, error) {
	if params.Rating < 0 || params.Rating > 5 {
		return model.CourseItem{}, newError(ErrorCodeValidation, "rating must be between 0 and 5", nil)
	}

	course, err := s.Get(ctx, courseID)
	if err != nil {
		return model.CourseItem{}, err
	}

	course.Reviews = append(course.Reviews, model.ReviewItem{
		StudentID: params.StudentID,
		Rating:    params.Rating,
		Comment:   strings.TrimSpace(params.Comment),
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	})

	total := 0.0
	for _, review := range course.Reviews {
		total += review.Rating
	}
	course.Rating = total / float64(len(course.Reviews))

	if err := s.repo.PutCourse(ctx, course); err != nil {
		return model.CourseItem{}, newError(ErrorCodeInternal, "failed to save review", err)
	}

	return course, nil
}

// AttachVideo appends a served video path to the course's video list.
func (s *Service) AttachVideo(ctx context.Context, teacherID, courseID, videoPath string) (model.CourseItem, error) {
	videoPath = strings.TrimSpace(videoPath)
	if videoPath == "" {
		return model.CourseItem{}, newError(ErrorCodeValidation, "missing video path", nil)
	}

	course, err := s.ownedCourse(ctx, teacherID, courseID)
	if err != nil {
		return model.CourseItem{}, err
	}

	updated, err := s.repo.AppendVideo(ctx, course.CourseID, videoPath)
	if err != nil {
		return model.CourseItem{}, newError(ErrorCodeInternal, "failed to attach video", err)
	}

	return updated, nil
}

func (s *Service) ownedCourse(ctx context.Context, teacherID, courseID string) (model.CourseItem, error) {
	course, err := s.Get(ctx, courseID)
	if err != nil {
		return model.CourseItem{}, err
	}

	if course.TeacherID != teacherID {
		return model.CourseItem{}, newError(ErrorCodeForbidden, "You can only modify your own courses!", nil)
	}

	return course, nil
}
