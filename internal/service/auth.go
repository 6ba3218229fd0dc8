package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"legalscan/internal/config"
	"legalscan/internal/model"
	"legalscan/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles user registration, login and token verification.
type AuthService interface {
	// Register creates a new user with a bcrypt-hashed password.
	// All self-registered accounts get the user role.
	Register(ctx context.Context, email, password string) (*model.User, error)

	// EnsureOwner provisions the owner account at startup. It is a no-op
	// when the email is already registered.
	EnsureOwner(ctx context.Context, email, password string) error

	// Login verifies credentials and returns a signed JWT.
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)

	// Verify parses a bearer token and returns the actor encoded in it.
	Verify(token string) (Actor, error)

	// RecentActivity returns the latest activity records. Owner role only.
	RecentActivity(ctx context.Context, actor Actor, limit int) ([]model.ActivityRecord, error)
}

type authService struct {
	users    repository.UserRepository
	activity repository.ActivityRepository
	cfg      config.AuthConfig
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository, activity repository.ActivityRepository, cfg config.AuthConfig) AuthService {
	return &authService{users: users, activity: activity, cfg: cfg}
}

func (s *authService) Register(ctx context.Context, email, password string) (*model.User, error) {
	return s.register(ctx, email, password, model.RoleUser)
}

func (s *authService) EnsureOwner(ctx context.Context, email, password string) error {
	_, err := s.register(ctx, email, password, model.RoleOwner)
	if errors.Is(err, ErrEmailTaken) {
		return nil
	}
	return err
}

func (s *authService) register(ctx context.Context, email, password, role string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(s.cfg.TokenTTLMin) * time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	recordActivity(ctx, s.activity, Actor{ID: user.ID, Email: user.Email, Role: user.Role}, "Logged in")
	return token, user, nil
}

func (s *authService) Verify(tokenString string) (Actor, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return Actor{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return Actor{}, ErrInvalidToken
	}
	return Actor{ID: sub, Email: email, Role: role}, nil
}

func (s *authService) RecentActivity(ctx context.Context, actor Actor, limit int) ([]model.ActivityRecord, error) {
	if actor.Role != model.RoleOwner {
		return nil, ErrForbidden
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.activity.ListRecent(ctx, limit)
}
