package course

import (
	"context"
	"sync"
	"testing"
	"time"

	"elearn-backend/internal/model"
)

type memoryRepository struct {
	mu      sync.Mutex
	courses map[string]model.CourseItem
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		courses: make(map[string]model.CourseItem),
	}
}

func (m *memoryRepository) ListCourses(ctx context.Context) ([]model.CourseItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	courses := make([]model.CourseItem, 0, len(m.courses))
	for _, course := range m.courses {
		courses = append(courses, course)
	}
	return courses, nil
}

func (m *memoryRepository) GetCourse(ctx context.Context, courseID string) (model.CourseItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	course, ok := m.courses[courseID]
	if !ok {
		return model.CourseItem{}, ErrNotFound
	}
	return course, nil
}

func (m *memoryRepository) PutCourse(ctx context.Context, course model.CourseItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courses[course.CourseID] = course
	return nil
}

func (m *memoryRepository) DeleteCourse(ctx context.Context, courseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.courses, courseID)
	return nil
}

func (m *memoryRepository) AppendVideo(ctx context.Context, courseID, videoPath string) (model.CourseItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	course, ok := m.courses[courseID]
	if !ok {
		return model.CourseItem{}, ErrNotFound
	}
	course.Videos = append(course.Videos, videoPath)
	m.courses[courseID] = course
	return course, nil
}

func fixedNow() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func mustCreate(t *testing.T, svc *Service, params CreateParams) model.CourseItem {
	t.Helper()
	course, err := svc.Create(context.Background(), params)
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}

func TestCreateStampsTeacherAndDefaults(t *testing.T) {
	svc := NewWithRepository(newMemoryRepository(), fixedNow)

	course := mustCreate(t, svc, CreateParams{
		TeacherID:   "teacher-1",
		Title:       "Algebra 101",
		Description: "Linear equations",
		Price:       29.99,
		Category:    "math",
		VideoURL:    "https://cdn.example.com/intro.mp4",
	})

	if course.TeacherID != "teacher-1" {
		t.Fatalf("expected teacher from params, got %q", course.TeacherID)
	}
	if course.Rating != 0 || len(course.Reviews) != 0 {
		t.Fatalf("expected empty review state, got %+v", course)
	}
	if len(course.Videos) != 1 || course.Videos[0] != "https://cdn.example.com/intro.mp4" {
		t.Fatalf("expected seeded video list, got %v", course.Videos)
	}
}

func TestGetUnknownCourseIsNotFound(t *testing.T) {
	svc := NewWithRepository(newMemoryRepository(), fixedNow)

	_, err := svc.Get(context.Background(), "missing")
	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateRequiresOwnership(t *testing.T) {
	svc := NewWithRepository(newMemoryRepository(), fixedNow)
	course := mustCreate(t, svc, CreateParams{TeacherID: "teacher-1", Title: "Algebra 101"})

	_, err := svc.Update(context.Background(), "teacher-2", course.CourseID, UpdateParams{Title: "Hijacked"})
	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	updated, err := svc.Update(context.Background(), "teacher-1", course.CourseID, UpdateParams{Title: "Algebra 102"})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "Algebra 102" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	svc := NewWithRepository(newMemoryRepository(), fixedNow)
	course := mustCreate(t, svc, CreateParams{
		TeacherID:   "teacher-1",
		Title:       "Algebra 101",
		Description: "Linear equations",
		Price:       29.99,
		Category:    "math",
	})

	updated, err := svc.Update(context.Background(), "teacher-1", course.CourseID, UpdateParams{
		Description: "Linear and quadratic equations",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Algebra 101" || updated.Price != 29.99 || updated.Category != "math" {
		t.Fatalf("unset fields were clobbered: %+v", updated)
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)
	course := mustCreate(t, svc, CreateParams{TeacherID: "teacher-1", Title: "Algebra 101"})

	err := svc.Delete(context.Background(), "teacher-2", course.CourseID)
	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if err := svc.Delete(context.Background(), "teacher-1", course.CourseID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := repo.GetCourse(context.Background(), course.CourseID); err != ErrNotFound {
		t.Fatal("expected course to be gone")
	}
}

func TestAddReviewRecomputesAverage(t *testing.T) {
	svc := NewWithRepository(newMemoryRepository(), fixedNow)
	course := mustCreate(t, svc, CreateParams{TeacherID: "teacher-1", Title: "Algebra 101"})

	if _, err := svc.AddReview(context.Background(), course.CourseID, ReviewParams{
		StudentID: "student-1",
		Rating:    5,
		Comment:   "great",
	}); err != nil {
		t.Fatalf("first review: %v", err)
	}

	updated, err := svc.AddReview(context.Background(), course.CourseID, ReviewParams{
		StudentID: "student-2",
		Rating:    2,
	})
	if err != nil {
		t.Fatalf("second review: %v", err)
	}

	if len(updated.Reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(updated.Reviews))
	}
	if updated.Rating != 3.5 {
		t.Fatalf("expected average rating 3.5, got %v", updated.Rating)
	}
}

func TestAddReviewRejectsOutOfRangeRating(t *testing.T) {
	svc := NewWithRepository(newMemoryRepository(), fixedNow)
	course := mustCreate(t, svc, CreateParams{TeacherID: "teacher-1", Title: "Algebra 101"})

	for _, rating := range []float64{-1, 5.5} {
		_, err := svc.AddReview(context.Background(), course.CourseID, ReviewParams{
			StudentID: "student-1",
			Rating:    rating,
		})
		svcErr, ok := err.(*Error)
		if !ok || svcErr.Code != ErrorCodeValidation {
			t.Fatalf("rating %v: expected validation error, got %v", rating, err)
		}
	}
}

func TestSearchMatchesSubstringCaseInsensitive(t *testing.T) {
	svc := NewWithRepository(newMemoryRepository(), fixedNow)
	mustCreate(t, svc, CreateParams{TeacherID: "teacher-1", Title: "Intro to Algebra"})
	mustCreate(t, svc, CreateParams{TeacherID: "teacher-1", Title: "Organic Chemistry"})

	matched, err := svc.Search(context.Background(), "ALGEBRA")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matched) != 1 || matched[0].Title != "Intro to Algebra" {
		t.Fatalf("unexpected matches: %+v", matched)
	}
}

func TestFilterCombinesCriteria(t *testing.T) {
	svc := NewWithRepository(newMemoryRepository(), fixedNow)
	mustCreate(t, svc, CreateParams{TeacherID: "teacher-1", Title: "Algebra", Category: "math", Price: 20})
	mustCreate(t, svc, CreateParams{TeacherID: "teacher-1", Title: "Calculus", Category: "math", Price: 80})
	mustCreate(t, svc, CreateParams{TeacherID: "teacher-2", Title: "Chemistry", Category: "science", Price: 30})

	maxPrice := 50.0
	matched, err := svc.Filter(context.Background(), FilterParams{
		Category: "math",
		MaxPrice: &maxPrice,
	})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(matched) != 1 || matched[0].Title != "Algebra" {
		t.Fatalf("unexpected matches: %+v", matched)
	}
}

func TestAttachVideoRequiresOwnership(t *testing.T) {
	svc := NewWithRepository(newMemoryRepository(), fixedNow)
	course := mustCreate(t, svc, CreateParams{TeacherID: "teacher-1", Title: "Algebra 101"})

	_, err := svc.AttachVideo(context.Background(), "teacher-2", course.CourseID, "/uploads/videos/1.mp4")
	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	updated, err := svc.AttachVideo(context.Background(), "teacher-1", course.CourseID, "/uploads/videos/1.mp4")
	if err != nil {
		t.Fatalf("attach video: %v", err)
	}
	if len(updated.Videos) != 1 || updated.Videos[0] != "/uploads/videos/1.mp4" {
		t.Fatalf("unexpected videos: %v", updated.Videos)
	}
}
