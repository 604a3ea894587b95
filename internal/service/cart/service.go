package cart

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"elearn-backend/internal/database"
	"elearn-backend/internal/model"
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

// List resolves each cart row to its course. Rows pointing at a deleted
// course are skipped rather than failing the whole read.
func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	items, err := s.repo.ListCartItems(ctx, userID)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list cart", err)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		course, err := s.repo.GetCourse(ctx, item.CourseID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, newError(ErrorCodeInternal, "failed to resolve cart course", err)
		}
		entries = append(entries, Entry{Item: item, Course: course})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Item.CreatedAt < entries[j].Item.CreatedAt
	})

	return entries, nil
}

func (s *Service) Add(ctx context.Context, userID, courseID string) (Entry, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return Entry{}, newError(ErrorCodeValidation, "missing course id", nil)
	}

	course, err := s.repo.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Entry{}, newError(ErrorCodeNotFound, "Course not found!", err)
		}
		return Entry{}, newError(ErrorCodeInternal, "failed to fetch course", err)
	}

	if _, err := s.repo.GetCartItem(ctx, userID, courseID); err == nil {
		return Entry{}, newError(ErrorCodeValidation, "Course is already in your cart!", nil)
	} else if !errors.Is(err, ErrNotFound) {
		return Entry{}, newError(ErrorCodeInternal, "failed to check cart", err)
	}

	item := model.CartItem{
		PK:        model.CartPK(userID, courseID),
		UserID:    userID,
		CourseID:  courseID,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.PutCartItem(ctx, item); err != nil {
		return Entry{}, newError(ErrorCodeInternal, "failed to save cart item", err)
	}

	return Entry{Item: item, Course: course}, nil
}

// Remove deletes the caller's cart row; removing a row that does not exist is
// not an error.
func (s *Service) Remove(ctx context.Context, userID, courseID string) error {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return newError(ErrorCodeValidation, "missing course id", nil)
	}

	if err := s.repo.DeleteCartItem(ctx, userID, courseID); err != nil {
		return newError(ErrorCodeInternal, "failed to remove cart item", err)
	}

	return nil
}
