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

// ProductRepository persists the product aggregate: the product row, its
// owned SKU rows and the category membership join table. Writes replace the
// owned collections wholesale inside one transaction, which keeps the stored
// state identical to the aggregate without diffing.
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO products (id, name, slug, product_type, status, return_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID(), p.Name().Value(), p.Slug().Value(), int16(p.Type()), int16(p.Status()),
		p.ReturnDays(), p.CreatedAt(), p.UpdatedAt())
	if err != nil {
		return err
	}
	if err := insertSkus(ctx, tx, p.ID(), p.Skus()); err != nil {
		return err
	}
	if err := insertCategoryLinks(ctx, tx, p.ID(), p.CategoryIDs()); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `
		UPDATE products
		SET name = $1, slug = $2, product_type = $3, status = $4, return_days = $5, updated_at = $6
		WHERE id = $7
	`, p.Name().Value(), p.Slug().Value(), int16(p.Type()), int16(p.Status()),
		p.ReturnDays(), p.UpdatedAt(), p.ID())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM skus WHERE product_id = $1`, p.ID()); err != nil {
		return err
	}
	if err := insertSkus(ctx, tx, p.ID(), p.Skus()); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM product_categories WHERE product_id = $1`, p.ID()); err != nil {
		return err
	}
	if err := insertCategoryLinks(ctx, tx, p.ID(), p.CategoryIDs()); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertSkus(ctx context.Context, tx pgx.Tx, productID string, skus []*entity.Sku) error {
	for _, s := range skus {
		_, err := tx.Exec(ctx, `
			INSERT INTO skus (id, product_id, code, price_amount, price_currency, active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, s.ID(), productID, s.Code(), s.Price().Amount().String(), s.Price().Currency(),
			s.IsActive(), s.CreatedAt())
		if err != nil {
			return err
		}
	}
	return nil
}

func insertCategoryLinks(ctx context.Context, tx pgx.Tx, productID string, categoryIDs []string) error {
	for _, cid := range categoryIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)
		`, productID, cid)
		if err != nil {
			return err
		}
	}
	return nil
}

const productColumns = `id, name, slug, product_type, status, return_days, created_at, updated_at`

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return r.scanProduct(ctx, row)
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	return r.scanProduct(ctx, row)
}

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products p
		JOIN product_categories pc ON pc.product_id = p.id
		WHERE pc.category_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, categoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := r.scanProduct(ctx, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) scanProduct(ctx context.Context, row pgx.Row) (*entity.Product, error) {
	var (
		id, nameStr, slugStr string
		ptype, status        int16
		returnDays           *int
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &nameStr, &slugStr, &ptype, &status, &returnDays,
		&createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	name, err := valueobject.NewProductName(nameStr)
	if err != nil {
		return nil, err
	}
	slug, err := valueobject.NewProductSlug(slugStr)
	if err != nil {
		return nil, err
	}
	skus, err := r.loadSkus(ctx, id)
	if err != nil {
		return nil, err
	}
	categoryIDs, err := r.loadCategoryIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	return entity.RehydrateProduct(id, name, slug, entity.ProductType(ptype),
		entity.ProductStatus(status), returnDays, skus, categoryIDs, createdAt, updatedAt), nil
}

func (r *ProductRepository) loadSkus(ctx context.Context, productID string) ([]*entity.Sku, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, code, price_amount, price_currency, active, created_at
		FROM skus WHERE product_id = $1
		ORDER BY created_at
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Sku
	for rows.Next() {
		var (
			id, code, amount, currency string
			active                     bool
			createdAt                  time.Time
		)
		if err := rows.Scan(&id, &code, &amount, &currency, &active, &createdAt); err != nil {
			return nil, err
		}
		price, err := valueobject.NewMoneyFromString(amount, currency)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.RehydrateSku(id, code, price, active, createdAt))
	}
	return out, rows.Err()
}

func (r *ProductRepository) loadCategoryIDs(ctx context.Context, productID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category_id FROM product_categories WHERE product_id = $1 ORDER BY category_id
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
