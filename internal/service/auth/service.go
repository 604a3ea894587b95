package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"elearn-backend/internal/database"
	internaljwt "elearn-backend/internal/jwt"
	"elearn-backend/internal/model"

	"github.com/google/uuid"
)

const invalidCredentialsMessage = "Invalid email or password!"

type Service struct {
	repo Repository
	now  func() time.Time
}

var createToken = internaljwt.CreateToken

// SetTokenIssuer swaps the token factory; tests use it to issue deterministic
// tokens. Passing nil restores the default.
func SetTokenIssuer(issuer func(internaljwt.User, internaljwt.Role, int64) (string, error)) {
	if issuer == nil {
		createToken = internaljwt.CreateToken
		return
	}
	createToken = issuer
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

func (s *Service) Register(ctx context.Context, params RegisterParams) (model.UserItem, error) {
	email := normalizeEmail(params.Email)
	password := strings.TrimSpace(params.Password)
	username := strings.TrimSpace(params.Username)
	role := strings.ToLower(strings.TrimSpace(params.Role))

	if email == "" || password == "" || username == "" {
		return model.UserItem{}, newError(ErrorCodeValidation, "missing required fields", nil)
	}
	if role != model.RoleTeacher && role != model.RoleStudent {
		return model.UserItem{}, newError(ErrorCodeValidation, "role must be teacher or student", nil)
	}

	if _, err := s.repo.FindUserByEmail(ctx, email); err == nil {
		return model.UserItem{}, newError(ErrorCodeValidation, "Email is already registered!", nil)
	} else if !errors.Is(err, ErrNotFound) {
		return model.UserItem{}, newError(ErrorCodeInternal, "failed to check existing user", err)
	}

	newUser, err := internaljwt.NewUser(internaljwt.RegisterUser{
		Username: username,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return model.UserItem{}, newError(ErrorCodeInternal, "failed to prepare user", err)
	}

	user := model.UserItem{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        email,
		Role:         role,
		PasswordHash: newUser.PasswordHash,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return model.UserItem{}, newError(ErrorCodeInternal, "failed to save user", err)
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, params LoginParams) (LoginResult, error) {
	email := normalizeEmail(params.Email)
	password := strings.TrimSpace(params.Password)

	if email == "" || password == "" {
		return LoginResult{}, newError(ErrorCodeValidation, "missing required fields", nil)
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Same message as a bad password so the response does not leak
			// which emails exist.
			return LoginResult{}, newError(ErrorCodeUnauthorized, invalidCredentialsMessage, nil)
		}
		return LoginResult{}, newError(ErrorCodeInternal, "failed to fetch user", err)
	}

	if !internaljwt.ValidatePassword(user.PasswordHash, password) {
		return LoginResult{}, newError(ErrorCodeUnauthorized, invalidCredentialsMessage, nil)
	}

	token, err := createToken(internaljwt.User{
		Id:    user.UserID,
		Email: user.Email,
		Role:  user.Role,
	}, internaljwt.RoleUser, 0)
	if err != nil {
		return LoginResult{}, newError(ErrorCodeInternal, "failed to issue token", err)
	}

	return LoginResult{
		User:   user,
		Tokens: internaljwt.TokenResponse{AccessToken: token},
	}, nil
}

func (s *Service) Me(ctx context.Context, identity Identity) (model.UserItem, error) {
	userID := strings.TrimSpace(identity.UserID)
	if userID == "" {
		return model.UserItem{}, newError(ErrorCodeUnauthorized, "invalid user identity", nil)
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.UserItem{}, newError(ErrorCodeNotFound, "user not found", err)
		}
		return model.UserItem{}, newError(ErrorCodeInternal, "failed to fetch user", err)
	}

	return user, nil
}

func (s *Service) IdentityFromAuthorizationHeader(header string) (Identity, error) {
	authHeader := strings.TrimSpace(header)
	if authHeader == "" {
		return Identity{}, newError(ErrorCodeUnauthorized, "missing authorization header", nil)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return Identity{}, newError(ErrorCodeUnauthorized, "invalid authorization header format", nil)
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return IdentityFromToken(token)
}

// IdentityFromToken decodes and verifies a raw access token. The websocket
// handshake uses it directly since the token arrives as a query parameter
// there, not a header.
func IdentityFromToken(token string) (Identity, error) {
	if token == "" {
		return Identity{}, newError(ErrorCodeUnauthorized, "empty token", nil)
	}

	claims, err := internaljwt.ParseToken(token, internaljwt.RoleUser)
	if err != nil {
		return Identity{}, newError(ErrorCodeUnauthorized, "invalid token", err)
	}

	userID, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	if userID == "" {
		return Identity{}, newError(ErrorCodeUnauthorized, "token missing identifiers", nil)
	}

	return Identity{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
