package repository

import (
	"context"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/entity"
)

// UserRepository defines the interface for user persistence. Loads go
// through the rehydration path; the domain core never sees the database.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
