package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"complainthub.org/internal/activity"
	"complainthub.org/internal/ids"
	"complainthub.org/internal/stream"
)

// Valid bcrypt hash used to equalize timing between unknown-email and
// wrong-password failures.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service implements registration, login, and logout over a UserStore. Login
// and logout record entries in the activity log.
type Service struct {
	users    UserStore
	tokens   *TokenManager
	activity *activity.Log
	events   *stream.Stream
	now      func() time.Time
}

// NewService constructs the auth service. events may be nil when no live
// dashboard feed is wired.
func NewService(users UserStore, tokens *TokenManager, log *activity.Log, events *stream.Stream) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		activity: log,
		events:   events,
		now:      time.Now,
	}
}

// Register creates a user with role "user" and a bcrypt password hash. No
// token is issued at registration.
func (s *Service) Register(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	user := &User{
		ID:           ids.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleUser,
		CreatedAt:    s.now().UTC(),
	}
	return s.users.Create(ctx, user)
}

// Login authenticates credentials and returns a signed session token. Unknown
// email and wrong password both fail with ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		_ = VerifyPassword(dummyHash, password)
		return "", ErrInvalidCredentials
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	token, _, err := s.tokens.Generate(user)
	if err != nil {
		return "", err
	}
	detail := fmt.Sprintf("User %s logged in", user.Email)
	if err := s.activity.Append(activity.EventLogin, detail); err != nil {
		return "", err
	}
	s.publish(activity.EventLogin, detail)
	return token, nil
}

// Logout records a logout entry. It is stateless: no token is invalidated and
// no authentication is performed.
func (s *Service) Logout(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	detail := fmt.Sprintf("User %s logged out", email)
	if err := s.activity.Append(activity.EventLogout, detail); err != nil {
		return err
	}
	s.publish(activity.EventLogout, detail)
	return nil
}

func (s *Service) publish(event activity.Event, detail string) {
	if s.events == nil {
		return
	}
	s.events.Publish(stream.Event{
		Kind:      string(event),
		Detail:    detail,
		Timestamp: s.now().UTC(),
	})
}
