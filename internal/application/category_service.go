package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/entity"
	repo "github.com/oksasatya/go-marketplace-ddd/internal/domain/repository"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/valueobject"
	"github.com/oksasatya/go-marketplace-ddd/internal/infrastructure/eventbus"
	"github.com/oksasatya/go-marketplace-ddd/pkg/helpers"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryCycle    = errors.New("reparenting would create a cycle")
)

const categoryTreeKey = "category:tree"

// CategoryService manages the category tree. Reads of the full tree go
// through a Redis cache that every write invalidates.
type CategoryService struct {
	Repo     repo.CategoryRepository
	Redis    *redis.Client
	Logger   *logrus.Logger
	Events   *eventbus.Publisher
	CacheTTL time.Duration
}

func NewCategoryService(repo repo.CategoryRepository, rdb *redis.Client, logger *logrus.Logger, events *eventbus.Publisher, cacheTTL time.Duration) *CategoryService {
	return &CategoryService{Repo: repo, Redis: rdb, Logger: logger, Events: events, CacheTTL: cacheTTL}
}

type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description *string
	ParentID    *string
	SortOrder   int
}

func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*entity.Category, error) {
	name, err := valueobject.NewCategoryName(in.Name)
	if err != nil {
		return nil, err
	}
	var slug valueobject.CategorySlug
	if in.Slug != "" {
		slug, err = valueobject.NewCategorySlug(in.Slug)
		if err != nil {
			return nil, err
		}
	}
	if in.ParentID != nil {
		if _, err := s.Repo.GetByID(ctx, *in.ParentID); err != nil {
			return nil, ErrCategoryNotFound
		}
	}
	c, err := entity.NewCategory(name, slug, in.Description, in.ParentID, in.SortOrder)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.finish(ctx, c)
	return c, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*entity.Category, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	c, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil || c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

type UpdateCategoryInput struct {
	Name        *string
	Slug        *string
	Description *string
	ClearDesc   bool
	SortOrder   *int
}

func (s *CategoryService) Update(ctx context.Context, id string, in UpdateCategoryInput) (*entity.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name, err := valueobject.NewCategoryName(*in.Name)
		if err != nil {
			return nil, err
		}
		if err := c.UpdateName(name); err != nil {
			return nil, err
		}
	}
	if in.Slug != nil {
		slug, err := valueobject.NewCategorySlug(*in.Slug)
		if err != nil {
			return nil, err
		}
		if err := c.UpdateSlug(slug); err != nil {
			return nil, err
		}
	}
	if in.ClearDesc {
		c.UpdateDescription(nil)
	} else if in.Description != nil {
		c.UpdateDescription(in.Description)
	}
	if in.SortOrder != nil {
		c.UpdateSortOrder(*in.SortOrder)
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.finish(ctx, c)
	return c, nil
}

// ChangeParent reparents a category after checking the move would not loop
// the tree. Pass nil to make the category a root.
func (s *CategoryService) ChangeParent(ctx context.Context, id string, newParentID *string) (*entity.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if newParentID != nil {
		if _, err := s.Repo.GetByID(ctx, *newParentID); err != nil {
			return nil, ErrCategoryNotFound
		}
		cycle, err := s.Repo.WouldCreateCycle(ctx, id, *newParentID)
		if err != nil {
			return nil, err
		}
		if cycle {
			return nil, ErrCategoryCycle
		}
	}
	c.ChangeParent(newParentID)
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.finish(ctx, c)
	return c, nil
}

func (s *CategoryService) Activate(ctx context.Context, id string) (*entity.Category, error) {
	return s.mutate(ctx, id, func(c *entity.Category) { c.Activate() })
}

func (s *CategoryService) Deactivate(ctx context.Context, id string) (*entity.Category, error) {
	return s.mutate(ctx, id, func(c *entity.Category) { c.Deactivate() })
}

func (s *CategoryService) Delete(ctx context.Context, id string) (*entity.Category, error) {
	return s.mutate(ctx, id, func(c *entity.Category) { c.Delete() })
}

func (s *CategoryService) mutate(ctx context.Context, id string, fn func(*entity.Category)) (*entity.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	fn(c)
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.finish(ctx, c)
	return c, nil
}

// TreeNode is the cached read model of the category tree.
type TreeNode struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	Status    string      `json:"status"`
	SortOrder int         `json:"sort_order"`
	Children  []*TreeNode `json:"children,omitempty"`
}

// Tree returns the whole category tree, serving from Redis when warm.
// Deleted categories are excluded.
func (s *CategoryService) Tree(ctx context.Context) ([]*TreeNode, error) {
	if s.Redis != nil {
		var cached []*TreeNode
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, categoryTreeKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	all, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	tree := buildTree(all)

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, categoryTreeKey, tree, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("cache category tree failed")
		}
	}
	return tree, nil
}

func (s *CategoryService) ListChildren(ctx context.Context, parentID *string) ([]*entity.Category, error) {
	return s.Repo.ListChildren(ctx, parentID)
}

func buildTree(all []*entity.Category) []*TreeNode {
	nodes := make(map[string]*TreeNode, len(all))
	for _, c := range all {
		if c.Status() == entity.CategoryStatusDeleted {
			continue
		}
		nodes[c.ID()] = &TreeNode{
			ID:        c.ID(),
			Name:      c.Name().Value(),
			Slug:      c.Slug().Value(),
			Status:    c.Status().String(),
			SortOrder: c.SortOrder(),
		}
	}
	var roots []*TreeNode
	for _, c := range all {
		node, ok := nodes[c.ID()]
		if !ok {
			continue
		}
		if pid := c.ParentID(); pid != nil {
			if parent, ok := nodes[*pid]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// finish drains events and invalidates the cached tree.
func (s *CategoryService) finish(ctx context.Context, c *entity.Category) {
	if s.Events != nil {
		s.Events.Drain(ctx, c)
	} else {
		c.ClearEvents()
	}
	if s.Redis != nil {
		_ = helpers.RedisDel(ctx, s.Redis, categoryTreeKey)
	}
}
