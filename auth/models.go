package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is a member's role
type UserRole = string

const (
	// RoleAnonymous is an unauthenticated visitor
	RoleAnonymous UserRole = "ROLE_ANONYMOUS"
	// RoleMember is a registered member (the default role)
	RoleMember UserRole = "ROLE_MEMBER"
	// RoleAdmin is an administrator
	RoleAdmin UserRole = "ROLE_ADMIN"
)

// Member is the account model. Federated accounts use the synthetic
// username `{provider}_{providerId}` and a hashed placeholder password.
type Member struct {
	bun.BaseModel `bun:"table:members,alias:mbr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Name          string     `bun:"name" json:"name,omitempty"`
	Email         string     `bun:"email" json:"email,omitempty"`
	Roles         string     `bun:"roles,notnull" json:"roles,omitempty"`
	Provider      string     `bun:"provider" json:"provider,omitempty"`
	ProviderID    string     `bun:"provider_id" json:"provider_id,omitempty"`
	LoggedInAt    *time.Time `bun:"loggedin_at" json:"loggedin_at,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// RoleList returns the member's roles as an ordered sequence
func (m *Member) RoleList() []string {
	return SplitRoles(m.Roles)
}

type memberIdentity struct {
	id       string
	username string
	email    string
	roles    []string
}

func (a memberIdentity) ID() string       { return a.id }
func (a memberIdentity) Username() string { return a.username }
func (a memberIdentity) Email() string    { return a.email }
func (a memberIdentity) Roles() []string  { return a.roles }

var _ Identity = memberIdentity{}

// IdentityFromMember wraps a stored member as an Identity
func IdentityFromMember(m *Member) Identity {
	return memberIdentity{
		id:       m.ID.String(),
		username: m.Username,
		email:    m.Email,
		roles:    m.RoleList(),
	}
}
