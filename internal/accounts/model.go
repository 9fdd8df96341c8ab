package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

var (
	ErrNotFound   = errors.New("account not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Account mirrors the accounts table.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *Account) IsAdmin() bool { return a != nil && a.Role == RoleAdmin }

type CreateParams struct {
	Email        string
	Name         string
	PasswordHash string
}

// Repository stores accounts. Create assigns the admin role to the first
// account and the member role to every later one.
type Repository interface {
	Create(ctx context.Context, p CreateParams) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	List(ctx context.Context, limit, offset int) ([]Account, error)
	Count(ctx context.Context) (int, error)
}
