package repository

import (
	"context"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence. The
// tree is navigated here, not in the aggregate: WouldCreateCycle walks the
// ancestor chain of a proposed parent so the application layer can refuse a
// reparent that would loop the tree.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	ListChildren(ctx context.Context, parentID *string) ([]*entity.Category, error)
	ListAll(ctx context.Context) ([]*entity.Category, error)
	WouldCreateCycle(ctx context.Context, categoryID string, newParentID string) (bool, error)
}
