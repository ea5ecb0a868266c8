package board

import (
	"context"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-board/auth"
)

// AnonymousWriter is recorded when a post is created without an identity
const AnonymousWriter = "anonymous"

// ErrNotWriter rejects edits by anyone but the original writer
var ErrNotWriter = goerrors.New("only the writer can modify this post", goerrors.CategoryAuthz).
	WithCode(goerrors.CodeForbidden).
	WithTextCode("NOT_WRITER")

// ErrWrongPostPassword rejects edits with a wrong post password
var ErrWrongPostPassword = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("WRONG_POST_PASSWORD")

// Service implements board post operations
type Service struct {
	repo *Repository
}

// NewService creates a new board service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of posts
func (s *Service) List(ctx context.Context, page, size int) (*Page, error) {
	return s.repo.List(ctx, page, size)
}

// Find loads one post
func (s *Service) Find(ctx context.Context, id int64) (*Board, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new post. The post password is hashed before it is
// persisted; the writer comes from the request identity or falls back to
// anonymous.
func (s *Service) Create(ctx context.Context, req Request, writer string) (*Board, error) {
	if err := req.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithCode(goerrors.CodeBadRequest)
	}

	if writer == "" {
		writer = AnonymousWriter
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash post password")
	}

	b := &Board{
		Title:        req.Title,
		Content:      req.Content,
		Writer:       writer,
		PasswordHash: hash,
	}

	return s.repo.Create(ctx, b)
}

// Update replaces title and content after checking writer and password
func (s *Service) Update(ctx context.Context, req Request, writer string, id int64) (*Board, error) {
	if err := req.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithCode(goerrors.CodeBadRequest)
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if writer == "" {
		writer = AnonymousWriter
	}

	if writer != b.Writer {
		return nil, ErrNotWriter
	}

	if err := auth.ComparePasswordAndHash(req.Password, b.PasswordHash); err != nil {
		return nil, ErrWrongPostPassword
	}

	b.Title = req.Title
	b.Content = req.Content

	return s.repo.Update(ctx, b)
}

// Delete soft-removes a post after checking writer and password
func (s *Service) Delete(ctx context.Context, req DeleteRequest, writer string, id int64) (*Board, error) {
	if err := req.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithCode(goerrors.CodeBadRequest)
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if writer == "" {
		writer = AnonymousWriter
	}

	if writer != b.Writer {
		return nil, ErrNotWriter
	}

	if err := auth.ComparePasswordAndHash(req.Password, b.PasswordHash); err != nil {
		return nil, ErrWrongPostPassword
	}

	if err := s.repo.Remove(ctx, b); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to remove post")
	}

	return b, nil
}
