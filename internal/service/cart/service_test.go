package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"elearn-backend/internal/model"
)

type memoryRepository struct {
	mu      sync.Mutex
	items   map[string]model.CartItem
	courses map[string]model.CourseItem
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		items:   make(map[string]model.CartItem),
		courses: make(map[string]model.CourseItem),
	}
}

func (m *memoryRepository) ListCartItems(ctx context.Context, userID string) ([]model.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]model.CartItem, 0)
	for _, item := range m.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *memoryRepository) GetCartItem(ctx context.Context, userID, courseID string) (model.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[model.CartPK(userID, courseID)]
	if !ok {
		return model.CartItem{}, ErrNotFound
	}
	return item, nil
}

func (m *memoryRepository) PutCartItem(ctx context.Context, item model.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.PK] = item
	return nil
}

func (m *memoryRepository) DeleteCartItem(ctx context.Context, userID, courseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, model.CartPK(userID, courseID))
	return nil
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

func (m *memoryRepository) addCourse(course model.CourseItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courses[course.CourseID] = course
}

func fixedNow() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func TestAddRequiresExistingCourse(t *testing.T) {
	svc := NewWithRepository(newMemoryRepository(), fixedNow)

	_, err := svc.Add(context.Background(), "student-1", "missing-course")
	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddRejectsDuplicate(t *testing.T) {
	repo := newMemoryRepository()
	repo.addCourse(model.CourseItem{CourseID: "course-1", Title: "Algebra"})
	svc := NewWithRepository(repo, fixedNow)

	if _, err := svc.Add(context.Background(), "student-1", "course-1"); err != nil {
		t.Fatalf("first add: %v", err)
	}

	_, err := svc.Add(context.Background(), "student-1", "course-1")
	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if svcErr.Message != "Course is already in your cart!" {
		t.Fatalf("unexpected message %q", svcErr.Message)
	}
}

func TestAddIsScopedToUser(t *testing.T) {
	repo := newMemoryRepository()
	repo.addCourse(model.CourseItem{CourseID: "course-1", Title: "Algebra"})
	svc := NewWithRepository(repo, fixedNow)

	if _, err := svc.Add(context.Background(), "student-1", "course-1"); err != nil {
		t.Fatalf("student-1 add: %v", err)
	}
	if _, err := svc.Add(context.Background(), "student-2", "course-1"); err != nil {
		t.Fatalf("student-2 add: %v", err)
	}

	entries, err := svc.List(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Course.Title != "Algebra" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestRemoveAbsentItemIsNotAnError(t *testing.T) {
	svc := NewWithRepository(newMemoryRepository(), fixedNow)

	if err := svc.Remove(context.Background(), "student-1", "course-1"); err != nil {
		t.Fatalf("expected removal of absent item to succeed, got %v", err)
	}
}

func TestListSkipsDeletedCourses(t *testing.T) {
	repo := newMemoryRepository()
	repo.addCourse(model.CourseItem{CourseID: "course-1", Title: "Algebra"})
	repo.addCourse(model.CourseItem{CourseID: "course-2", Title: "Chemistry"})
	svc := NewWithRepository(repo, fixedNow)

	if _, err := svc.Add(context.Background(), "student-1", "course-1"); err != nil {
		t.Fatalf("add course-1: %v", err)
	}
	if _, err := svc.Add(context.Background(), "student-1", "course-2"); err != nil {
		t.Fatalf("add course-2: %v", err)
	}

	repo.mu.Lock()
	delete(repo.courses, "course-2")
	repo.mu.Unlock()

	entries, err := svc.List(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Item.CourseID != "course-1" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
