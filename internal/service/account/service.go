package account

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	sessionrepo "storefront/internal/repository/session"
	userrepo "storefront/internal/repository/user"
)

// ErrInvalidCredentials is returned for unknown email and wrong password
// alike, so callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")

const (
	passwordMin = 6
	sessionTTL  = 24 * time.Hour
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service handles registration, login and account maintenance.
type Service struct {
	users    userrepo.Repository
	sessions sessionrepo.Repository
}

func New(users userrepo.Repository, sessions sessionrepo.Repository) *Service {
	return &Service{users: users, sessions: sessions}
}

// RegisterInput captures the signup payload.
type RegisterInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	TaxID        string `json:"tax_id"`
	Phone        string `json:"phone"`
	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Register creates a new account with role user. The password is hashed
// before it is stored and is never logged or echoed back.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.TaxID == "" || in.Phone == "" {
		return nil, fmt.Errorf("%w: name, email, password, tax id and phone are required", domain.ErrValidation)
	}
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if len(in.Password) < passwordMin {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, passwordMin)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, domain.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hashed),
		TaxID:        in.TaxID,
		Phone:        in.Phone,
		PostalCode:   in.PostalCode,
		Street:       in.Street,
		Neighborhood: in.Neighborhood,
		City:         in.City,
		State:        in.State,
		Role:         domain.RoleUser,
	})
}

// Login validates credentials and issues a server-side session. The session
// token is an opaque value; everything about the session lives in the store.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.sessions.Create(ctx, sessionrepo.Session{
		Token:     token,
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}); err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Logout destroys the session. A missing session is not an error; the
// client proceeds with local cleanup regardless.
func (s *Service) Logout(ctx context.Context, token string) error {
	err := s.sessions.Delete(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

// LookupSession resolves a session token to its account. Expired sessions
// are deleted on touch and reported as not found.
func (s *Service) LookupSession(ctx context.Context, token string) (*domain.User, error) {
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, domain.ErrNotFound
	}
	return s.users.GetByID(ctx, sess.UserID)
}

// Profile returns the account record for display.
func (s *Service) Profile(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile changes the mutable subset of account fields. Email,
// password and role are never altered here.
func (s *Service) UpdateProfile(ctx context.Context, id int64, p domain.ProfileUpdate) error {
	if p.Name == "" || p.Phone == "" {
		return fmt.Errorf("%w: name and phone are required", domain.ErrValidation)
	}
	return s.users.UpdateProfile(ctx, id, p)
}

// ChangePassword replaces the stored hash after re-validating the current
// credential.
func (s *Service) ChangePassword(ctx context.Context, id int64, current, next string) error {
	if current == "" || next == "" {
		return fmt.Errorf("%w: current and new password are required", domain.ErrValidation)
	}
	if len(next) < passwordMin {
		return fmt.Errorf("%w: new password must be at least %d characters", domain.ErrValidation, passwordMin)
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, id, string(hashed))
}
