package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	internaljwt "elearn-backend/internal/jwt"
	"elearn-backend/internal/model"
)

type memoryRepository struct {
	mu           sync.Mutex
	users        map[string]model.UserItem
	usersByEmail map[string]string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		users:        make(map[string]model.UserItem),
		usersByEmail: make(map[string]string),
	}
}

func (m *memoryRepository) CreateUser(ctx context.Context, user model.UserItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.UserID] = user
	m.usersByEmail[user.Email] = user.UserID
	return nil
}

func (m *memoryRepository) FindUserByEmail(ctx context.Context, email string) (model.UserItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.usersByEmail[email]
	if !ok {
		return model.UserItem{}, ErrNotFound
	}
	return m.users[userID], nil
}

func (m *memoryRepository) GetUser(ctx context.Context, userID string) (model.UserItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return model.UserItem{}, ErrNotFound
	}
	return user, nil
}

func fixedNow() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func TestRegisterCreatesStudent(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	user, err := svc.Register(context.Background(), RegisterParams{
		Username: "Ada",
		Email:    "Ada@Example.com",
		Password: "secret",
		Role:     "student",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != model.RoleStudent {
		t.Fatalf("expected student role, got %q", user.Role)
	}
	if user.PasswordHash == "secret" || user.PasswordHash == "" {
		t.Fatal("expected password to be hashed")
	}
	if user.CreatedAt != "2024-01-01T12:00:00Z" {
		t.Fatalf("unexpected createdAt %q", user.CreatedAt)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := NewWithRepository(newMemoryRepository(), fixedNow)

	_, err := svc.Register(context.Background(), RegisterParams{
		Username: "Ada",
		Email:    "ada@example.com",
		Password: "secret",
		Role:     "admin",
	})

	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	params := RegisterParams{
		Username: "Ada",
		Email:    "ada@example.com",
		Password: "secret",
		Role:     "teacher",
	}
	if _, err := svc.Register(context.Background(), params); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), params)
	svcErr, ok := err.(*Error)
	if !ok || svcErr.Code != ErrorCodeValidation {
		t.Fatalf("expected validation error for duplicate email, got %v", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	if _, err := svc.Register(context.Background(), RegisterParams{
		Username: "Ada",
		Email:    "ada@example.com",
		Password: "secret",
		Role:     "teacher",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(context.Background(), LoginParams{
		Email:    "ada@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Tokens.AccessToken == "" {
		t.Fatal("expected an access token")
	}

	identity, err := IdentityFromToken(result.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("round-trip token: %v", err)
	}
	if identity.UserID != result.User.UserID {
		t.Fatalf("expected identity %q, got %q", result.User.UserID, identity.UserID)
	}
	if identity.Role != model.RoleTeacher {
		t.Fatalf("expected teacher role in claims, got %q", identity.Role)
	}
}

func TestLoginDoesNotRevealWhichFieldWasWrong(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewWithRepository(repo, fixedNow)

	if _, err := svc.Register(context.Background(), RegisterParams{
		Username: "Ada",
		Email:    "ada@example.com",
		Password: "secret",
		Role:     "student",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, unknownEmailErr := svc.Login(context.Background(), LoginParams{
		Email:    "nobody@example.com",
		Password: "secret",
	})
	_, wrongPasswordErr := svc.Login(context.Background(), LoginParams{
		Email:    "ada@example.com",
		Password: "wrong",
	})

	for _, err := range []error{unknownEmailErr, wrongPasswordErr} {
		svcErr, ok := err.(*Error)
		if !ok || svcErr.Code != ErrorCodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
		if svcErr.Message != invalidCredentialsMessage {
			t.Fatalf("expected %q, got %q", invalidCredentialsMessage, svcErr.Message)
		}
	}
}

func TestIdentityFromAuthorizationHeader(t *testing.T) {
	user := internaljwt.User{Id: "user-1", Email: "ada@example.com", Role: model.RoleStudent}
	token, err := internaljwt.CreateToken(user, internaljwt.RoleUser, 0)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	svc := NewWithRepository(newMemoryRepository(), fixedNow)

	identity, err := svc.IdentityFromAuthorizationHeader("Bearer " + token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.UserID != "user-1" || identity.Role != model.RoleStudent {
		t.Fatalf("unexpected identity %+v", identity)
	}

	if _, err := svc.IdentityFromAuthorizationHeader(""); err == nil {
		t.Fatal("expected error for missing header")
	}
	if _, err := svc.IdentityFromAuthorizationHeader(token); err == nil {
		t.Fatal("expected error for missing Bearer prefix")
	}
}
