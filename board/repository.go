package board

import (
	"context"
	"database/sql"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// ErrBoardNotFound is returned when no post matches the lookup
var ErrBoardNotFound = goerrors.New("board post not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("BOARD_NOT_FOUND")

// Repository persists board posts with Bun
type Repository struct {
	db *bun.DB
}

// NewRepository creates a new repository
func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// GetByID loads a post by id, excluding soft-deleted rows
func (r *Repository) GetByID(ctx context.Context, id int64) (*Board, error) {
	b := new(Board)
	err := r.db.NewSelect().
		Model(b).
		Where("brd.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return b, nil
}

// List returns one page of posts, newest first
func (r *Repository) List(ctx context.Context, page, size int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	var items []*Board
	total, err := r.db.NewSelect().
		Model(&items).
		Order("brd.id DESC").
		Limit(size).
		Offset((page - 1) * size).
		ScanAndCount(ctx)
	if err != nil {
		return nil, err
	}

	return &Page{
		Items:      items,
		Total:      total,
		PageNumber: page,
		PageSize:   size,
	}, nil
}

// Create inserts a new post
func (r *Repository) Create(ctx context.Context, b *Board) (*Board, error) {
	_, err := r.db.NewInsert().
		Model(b).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Update stores new title and content for a post
func (r *Repository) Update(ctx context.Context, b *Board) (*Board, error) {
	now := time.Now()
	b.UpdatedAt = &now

	_, err := r.db.NewUpdate().
		Model(b).
		Column("title", "content", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Remove soft-deletes a post
func (r *Repository) Remove(ctx context.Context, b *Board) error {
	_, err := r.db.NewDelete().
		Model(b).
		WherePK().
		Exec(ctx)
	return err
}
