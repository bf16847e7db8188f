package application

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/aryasetya/go-auth-api/internal/domain/entity"
	repo "github.com/aryasetya/go-auth-api/internal/domain/repository"
	"github.com/aryasetya/go-auth-api/pkg/events"
	"github.com/aryasetya/go-auth-api/pkg/helpers"
)

var (
	ErrMissingFields      = errors.New("required fields are missing")
	ErrInvalidEmail       = errors.New("email address is malformed")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternal           = errors.New("internal error")
)

// MinPasswordLength is the registration floor; 7 fails, 8 passes.
const MinPasswordLength = 8

const profileCacheTTL = 10 * time.Minute

// EventPublisher publishes domain events; the concrete implementation lives
// in pkg/events. A nil publisher disables publishing.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Service orchestrates registration, credential verification, and reads.
// Hashing happens here, exactly once per plaintext; the store never hashes.
type Service struct {
	Repo       repo.UserRepository
	JWT        *helpers.JWTManager
	Redis      *redis.Client
	Logger     *logrus.Logger
	Publisher  EventPublisher
	BcryptCost int
}

func NewService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub EventPublisher, bcryptCost int) *Service {
	return &Service{
		Repo:       r,
		JWT:        jwt,
		Redis:      rdb,
		Logger:     logger,
		Publisher:  pub,
		BcryptCost: bcryptCost,
	}
}

// RegisterInput carries the signup payload. PhoneNumber and Age are optional
// profile fields, absent by default.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber *int64
	Age         *int
}

// UserProjection is what registration returns to the caller: never the hash.
type UserProjection struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserView is the read model for the protected endpoints. The password hash
// has no representation here.
type UserView struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	PhoneNumber *int64    `json:"phoneNumber,omitempty"`
	Age         *int      `json:"age,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func viewOf(u *entity.User) *UserView {
	return &UserView{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Age:         u.Age,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// normalizeEmail fixes the case-sensitivity policy: addresses are lowercased
// and trimmed at the boundary, matched verbatim thereafter.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmailShape(email string) bool {
	if strings.ContainsFunc(email, unicode.IsSpace) {
		return false
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	// a second @ is not an address
	return strings.LastIndex(email, "@") == at
}

func profileCacheKey(id string) string {
	return "user:profile:" + id
}

// Register validates and persists a new account. Checks run in order and the
// first failure wins; email uniqueness is arbitrated by the store constraint
// at insert time.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*UserProjection, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	email := normalizeEmail(in.Email)
	if !validEmailShape(email) {
		return nil, ErrInvalidEmail
	}
	if len(in.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		s.logError("password hashing failed", err, logrus.Fields{"email": email})
		return nil, ErrInternal
	}

	u := &entity.User{
		Username:     in.Username,
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  in.PhoneNumber,
		Age:          in.Age,
	}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		s.logError("user create failed", err, logrus.Fields{"email": email})
		return nil, ErrInternal
	}

	if s.Publisher != nil {
		ev := events.UserRegistered{
			UserID:     u.ID,
			Username:   u.Username,
			Email:      u.Email,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.Publisher.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("user.registered publish failed")
		}
	}

	return &UserProjection{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}

// Login verifies credentials and issues a bearer token. Unknown address and
// wrong password are reported separately, matching the reference behavior.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrMissingFields
	}
	u, err := s.Repo.GetByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		s.logError("user lookup failed", err, logrus.Fields{"email": email})
		return "", ErrInternal
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.JWT.Issue(u.ID, u.Username, u.Email)
	if err != nil {
		s.logError("token issue failed", err, logrus.Fields{"user_id": u.ID})
		return "", ErrInternal
	}
	return token, nil
}

// GetUser returns the profile view for one account, read through the cache
// when one is configured. Cache failures degrade to the store.
func (s *Service) GetUser(ctx context.Context, id string) (*UserView, error) {
	if s.Redis != nil {
		var cached UserView
		ok, err := helpers.RedisGetJSON(ctx, s.Redis, profileCacheKey(id), &cached)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("profile cache read failed")
		}
		if ok {
			return &cached, nil
		}
	}

	u, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logError("user fetch failed", err, logrus.Fields{"user_id": id})
		return nil, ErrInternal
	}

	view := viewOf(u)
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profileCacheKey(id), view, profileCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("profile cache write failed")
		}
	}
	return view, nil
}

// ListUsers returns all accounts as profile views, straight from the store.
func (s *Service) ListUsers(ctx context.Context) ([]*UserView, error) {
	users, err := s.Repo.List()
	if err != nil {
		s.logError("user list failed", err, nil)
		return nil, ErrInternal
	}
	views := make([]*UserView, 0, len(users))
	for _, u := range users {
		views = append(views, viewOf(u))
	}
	return views, nil
}

func (s *Service) logError(msg string, err error, fields logrus.Fields) {
	if s.Logger == nil {
		return
	}
	helpers.LogError(s.Logger, msg, err, fields)
}
