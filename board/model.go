package board

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/uptrace/bun"
)

// Board is a discussion-board post. Posts carry their own hashed password
// so guests can manage what they wrote.
type Board struct {
	bun.BaseModel `bun:"table:boards,alias:brd"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Title         string     `bun:"title,notnull" json:"title"`
	Content       string     `bun:"content,notnull" json:"content"`
	Writer        string     `bun:"writer,notnull" json:"writer"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

var postPasswordPattern = regexp.MustCompile(`^[0-9]{6}$`)

// Request is the create/update payload for a post
type Request struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Password string `json:"password"`
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("please enter a title"),
			validation.Length(1, 100).Error("title cannot exceed 100 characters"),
		),
		validation.Field(&r.Content,
			validation.Required.Error("please enter the content"),
			validation.Length(1, 2000).Error("content cannot exceed 2000 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("please enter a password"),
			validation.Match(postPasswordPattern).Error("post password must be 6 digits"),
		),
	)
}

// DeleteRequest carries the post password for deletion
type DeleteRequest struct {
	Password string `json:"password"`
}

func (r DeleteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password,
			validation.Required.Error("please enter a password"),
			validation.Match(postPasswordPattern).Error("post password must be 6 digits"),
		),
	)
}

// Page is a paged board listing
type Page struct {
	Items      []*Board `json:"items"`
	Total      int      `json:"total"`
	PageNumber int      `json:"page"`
	PageSize   int      `json:"size"`
}
