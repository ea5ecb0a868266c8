package member

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-board/auth"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// RegisterRequest is the payload for creating a member account
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// Validate mirrors the account rules: username 1-10 chars, password 8-12
// chars mixing lowercase, digit, and symbol, plus name and a well-formed
// email.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("please enter your username"),
			validation.Length(1, 10).Error("username must be between 1 and 10 characters"),
			validation.Match(usernamePattern).Error("username has invalid characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("please enter your password"),
			validation.By(passwordRule),
		),
		validation.Field(&r.Name,
			validation.Required.Error("please enter your name"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("please enter your email"),
			is.Email.Error("email format is invalid"),
		),
	)
}

// passwordRule enforces 8-12 characters with at least one lowercase letter,
// one digit, and one symbol. Go's regexp has no lookaheads, so the checks
// are explicit.
func passwordRule(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Required handles absence
	}

	err := errors.New("password must be 8 to 12 characters and include a lowercase letter, a digit, and a symbol")

	if len(s) < 8 || len(s) > 12 || strings.ContainsAny(s, " \t\n") {
		return err
	}

	var hasLower, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	if !hasLower || !hasDigit || !hasSymbol {
		return err
	}

	return nil
}

// UpdateRequest changes a member's password after verifying the previous one
type UpdateRequest struct {
	ID           uuid.UUID `json:"id"`
	PrevPassword string    `json:"prev_password"`
	NewPassword  string    `json:"new_password"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PrevPassword,
			validation.Required.Error("please enter your current password"),
		),
		validation.Field(&r.NewPassword,
			validation.Required.Error("please enter your new password"),
			validation.By(passwordRule),
		),
	)
}

// ErrDuplicateUsername rejects registrations reusing an existing username
var ErrDuplicateUsername = goerrors.New("username already exists", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict).
	WithTextCode("DUPLICATE_USERNAME")

// ErrPasswordMismatch rejects password updates with a wrong previous password
var ErrPasswordMismatch = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("PASSWORD_MISMATCH")

// ErrAlreadyRemoved rejects deleting a member twice
var ErrAlreadyRemoved = goerrors.New("member already removed", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict).
	WithTextCode("MEMBER_REMOVED")

// Service implements member account operations
type Service struct {
	repo   *Repository
	logger auth.Logger
}

// NewService creates a new member service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) WithLogger(l auth.Logger) *Service {
	s.logger = l
	return s
}

// Register creates a direct-registration account with the default role
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*auth.Member, error) {
	if err := req.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithCode(goerrors.CodeBadRequest)
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check username")
	}
	if exists {
		return nil, ErrDuplicateUsername
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	m := &auth.Member{
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Email:        req.Email,
		Roles:        auth.RoleMember,
	}

	return s.repo.Create(ctx, m)
}

// IsUsernameTaken reports whether a username is already registered
func (s *Service) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	return s.repo.ExistsByUsername(ctx, username)
}

// Find loads a member by username
func (s *Service) Find(ctx context.Context, username string) (*auth.Member, error) {
	return s.repo.GetByUsername(ctx, username)
}

// UpdatePassword verifies the previous password before storing the new hash
func (s *Service) UpdatePassword(ctx context.Context, req UpdateRequest) (*auth.Member, error) {
	if err := req.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithCode(goerrors.CodeBadRequest)
	}

	m, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := auth.ComparePasswordAndHash(req.PrevPassword, m.PasswordHash); err != nil {
		return nil, ErrPasswordMismatch
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	if err := s.repo.UpdatePassword(ctx, m.ID, hash); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update password")
	}

	m.PasswordHash = hash
	return m, nil
}

// Remove soft-deletes a member account
func (s *Service) Remove(ctx context.Context, username string) (*auth.Member, error) {
	m, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrAlreadyRemoved
		}
		return nil, err
	}

	if err := s.repo.Remove(ctx, m); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to remove member")
	}

	return m, nil
}
