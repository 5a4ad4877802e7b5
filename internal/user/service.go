package user

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/splitledger/pkg/apperr"
)

// Common errors
var (
	ErrUserNotFound       = apperr.NotFound("User not found")
	ErrEmailAlreadyInUse  = apperr.Conflict("Email already in use")
	ErrInvalidCredentials = apperr.Unauthenticated("Invalid email or password")
	ErrNameRequired       = apperr.Validation("Name is required")
	ErrInvalidEmail       = apperr.Validation("A valid email is required")
	ErrWeakPassword       = apperr.Validationf("Password must be at least %d characters", minPasswordLength)
	ErrUserHasHistory     = apperr.Conflict("Accounts with group history cannot be deleted")
)

// TokenIssuer creates session tokens for authenticated users
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, error)
}

// Service handles user business logic
type Service struct {
	repo   *Repository
	tokens TokenIssuer
}

// NewService creates a new user service with repository dependency injected
func NewService(repo *Repository, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a new account and signs the user in
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, "", ErrNameRequired
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, "", err
	}
	if len(req.Password) < minPasswordLength {
		return nil, "", ErrWeakPassword
	}

	// Check if email is already in use
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailAlreadyInUse
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}

	slog.InfoContext(ctx, "user registered", "user_id", u.ID)
	return u, token, nil
}

// Login checks the credentials and returns a fresh token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*User, string, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil || !checkPassword(u.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// GetByID retrieves a user by their ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// List retrieves a page of users
func (s *Service) List(ctx context.Context, page, perPage int) ([]*User, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Update changes the fields of the user's profile present in req
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		u.Name = name
	}

	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		if email != u.Email {
			existing, err := s.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, ErrEmailAlreadyInUse
			}
			u.Email = email
		}
	}

	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			return nil, ErrWeakPassword
		}
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user updated", "user_id", u.ID)
	return u, nil
}

// Delete removes an account that never took part in a group
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	hasHistory, err := s.repo.HasHistory(ctx, id)
	if err != nil {
		return err
	}
	if hasHistory {
		return ErrUserHasHistory
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
