package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/entity"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/repository"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/valueobject"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, name, slug, description, parent_id, sort_order, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, c.ID(), c.Name().Value(), c.Slug().Value(), c.Description(), c.ParentID(),
		c.SortOrder(), int16(c.Status()), c.CreatedAt(), c.UpdatedAt())
	return err
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE categories
		SET name = $1, slug = $2, description = $3, parent_id = $4, sort_order = $5,
		    status = $6, updated_at = $7
		WHERE id = $8
	`, c.Name().Value(), c.Slug().Value(), c.Description(), c.ParentID(),
		c.SortOrder(), int16(c.Status()), c.UpdatedAt(), c.ID())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const categoryColumns = `id, name, slug, description, parent_id, sort_order, status, created_at, updated_at`

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	return scanCategory(row)
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	return scanCategory(row)
}

// ListChildren returns the direct children of parentID; pass nil for roots.
func (r *CategoryRepository) ListChildren(ctx context.Context, parentID *string) ([]*entity.Category, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if parentID == nil {
		rows, err = r.pool.Query(ctx, `
			SELECT `+categoryColumns+` FROM categories
			WHERE parent_id IS NULL
			ORDER BY sort_order, name
		`)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT `+categoryColumns+` FROM categories
			WHERE parent_id = $1
			ORDER BY sort_order, name
		`, *parentID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

func (r *CategoryRepository) ListAll(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+` FROM categories ORDER BY sort_order, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

// WouldCreateCycle walks the ancestor chain of newParentID and reports
// whether categoryID appears in it. Reparenting onto itself counts as a
// cycle too.
func (r *CategoryRepository) WouldCreateCycle(ctx context.Context, categoryID string, newParentID string) (bool, error) {
	if categoryID == newParentID {
		return true, nil
	}
	var found bool
	err := r.pool.QueryRow(ctx, `
		WITH RECURSIVE ancestors AS (
			SELECT id, parent_id FROM categories WHERE id = $1
			UNION ALL
			SELECT c.id, c.parent_id
			FROM categories c
			JOIN ancestors a ON c.id = a.parent_id
		)
		SELECT EXISTS (SELECT 1 FROM ancestors WHERE id = $2)
	`, newParentID, categoryID).Scan(&found)
	return found, err
}

func scanCategories(rows pgx.Rows) ([]*entity.Category, error) {
	var out []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var (
		id, nameStr, slugStr  string
		description, parentID *string
		sortOrder             int
		status                int16
		createdAt, updatedAt  time.Time
	)
	if err := row.Scan(&id, &nameStr, &slugStr, &description, &parentID,
		&sortOrder, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	name, err := valueobject.NewCategoryName(nameStr)
	if err != nil {
		return nil, err
	}
	slug, err := valueobject.NewCategorySlug(slugStr)
	if err != nil {
		return nil, err
	}
	return entity.RehydrateCategory(id, name, slug, description, parentID,
		sortOrder, entity.CategoryStatus(status), createdAt, updatedAt), nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
