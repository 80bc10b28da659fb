package repository

import (
	"context"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/entity"
)

// ProductRepository defines the interface for product persistence, including
// the owned SKU collection and category memberships.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]*entity.Product, error)
}
