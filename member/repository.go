package member

import (
	"context"
	"database/sql"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-board/auth"
)

// ErrMemberNotFound is returned when no member matches the lookup
var ErrMemberNotFound = goerrors.New("member not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("MEMBER_NOT_FOUND")

// Repository persists members with Bun
type Repository struct {
	db *bun.DB
}

// NewRepository creates a new repository
func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// GetByUsername implements auth.MemberTracker. Soft-deleted members are
// excluded by the model's deleted_at marker.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*auth.Member, error) {
	m := new(auth.Member)
	err := r.db.NewSelect().
		Model(m).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

// GetByID loads a member by primary key
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*auth.Member, error) {
	m := new(auth.Member)
	err := r.db.NewSelect().
		Model(m).
		Where("mbr.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

// Create inserts a new member row
func (r *Repository) Create(ctx context.Context, m *auth.Member) (*auth.Member, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	_, err := r.db.NewInsert().
		Model(m).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ExistsByUsername reports whether a member with the username exists
func (r *Repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.db.NewSelect().
		Model((*auth.Member)(nil)).
		Where("username = ?", username).
		Exists(ctx)
}

// UpdatePassword replaces the stored password hash of a single member
func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.db.NewUpdate().
		Model((*auth.Member)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// TrackSuccessfulLogin implements auth.MemberTracker: a single-field update
// of the login timestamp on the account row.
func (r *Repository) TrackSuccessfulLogin(ctx context.Context, m *auth.Member) error {
	now := time.Now()
	m.LoggedInAt = &now

	_, err := r.db.NewUpdate().
		Model(m).
		Column("loggedin_at").
		WherePK().
		Exec(ctx)
	return err
}

// Remove soft-deletes the member
func (r *Repository) Remove(ctx context.Context, m *auth.Member) error {
	_, err := r.db.NewDelete().
		Model(m).
		WherePK().
		Exec(ctx)
	return err
}

var _ auth.MemberTracker = (*Repository)(nil)
