package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/oksasatya/go-marketplace-ddd/config"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/entity"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/valueobject"
	pginfra "github.com/oksasatya/go-marketplace-ddd/internal/infrastructure/postgres"
	"github.com/oksasatya/go-marketplace-ddd/pkg/helpers"
)

// Seeds a demo admin user, a small category tree and one orderable product.
// Goes through the domain constructors so seeded rows obey the same rules
// as rows written by the API.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	categories := pginfra.NewCategoryRepository(pool)
	products := pginfra.NewProductRepository(pool)

	// Admin user
	email, err := valueobject.NewEmail("admin@example.com")
	if err != nil {
		log.Fatalf("seed email: %v", err)
	}
	hash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	admin, err := entity.NewUser(email, hash)
	if err != nil {
		log.Fatalf("new user: %v", err)
	}
	admin.VerifyEmail()
	if err := admin.Activate(); err != nil {
		log.Fatalf("activate user: %v", err)
	}
	admin.ClearEvents()
	if existing, err := users.GetByEmail(ctx, email.Value()); err == nil && existing != nil {
		fmt.Printf("user already seeded: id=%s email=%s\n", existing.ID(), email.Value())
	} else {
		if err := users.Create(ctx, admin); err != nil {
			log.Fatalf("seed user: %v", err)
		}
		fmt.Printf("seeded user: id=%s email=%s password=password123\n", admin.ID(), email.Value())
	}

	// Category tree: electronics > phones
	root := seedCategory(ctx, categories, "Electronics", "electronics", nil, 0)
	rootID := root.ID()
	phones := seedCategory(ctx, categories, "Phones", "phones", &rootID, 1)

	// One active product with a SKU, linked to the leaf category
	if existing, err := products.GetBySlug(ctx, "demo-phone"); err == nil && existing != nil {
		fmt.Printf("product already seeded: id=%s\n", existing.ID())
		return
	}
	name, err := valueobject.NewProductName("Demo Phone")
	if err != nil {
		log.Fatalf("product name: %v", err)
	}
	product, err := entity.NewProduct(name, entity.ProductTypePhysical)
	if err != nil {
		log.Fatalf("new product: %v", err)
	}
	price, err := valueobject.NewMoneyVND(decimal.NewFromInt(4990000))
	if err != nil {
		log.Fatalf("price: %v", err)
	}
	sku, err := entity.NewSku("DEMO-PHONE-128", price)
	if err != nil {
		log.Fatalf("new sku: %v", err)
	}
	if err := product.AddSku(sku); err != nil {
		log.Fatalf("add sku: %v", err)
	}
	if err := product.AddCategory(phones); err != nil {
		log.Fatalf("add category: %v", err)
	}
	if err := product.Activate(); err != nil {
		log.Fatalf("activate product: %v", err)
	}
	product.ClearEvents()
	if err := products.Create(ctx, product); err != nil {
		log.Fatalf("seed product: %v", err)
	}
	fmt.Printf("seeded product: id=%s slug=%s\n", product.ID(), product.Slug().Value())
}

func seedCategory(ctx context.Context, repo *pginfra.CategoryRepository, name, slug string, parentID *string, sortOrder int) *entity.Category {
	if existing, err := repo.GetBySlug(ctx, slug); err == nil && existing != nil {
		fmt.Printf("category already seeded: %s id=%s\n", slug, existing.ID())
		return existing
	}
	n, err := valueobject.NewCategoryName(name)
	if err != nil {
		log.Fatalf("category name %s: %v", name, err)
	}
	s, err := valueobject.NewCategorySlug(slug)
	if err != nil {
		log.Fatalf("category slug %s: %v", slug, err)
	}
	c, err := entity.NewCategory(n, s, nil, parentID, sortOrder)
	if err != nil {
		log.Fatalf("new category %s: %v", slug, err)
	}
	c.ClearEvents()
	if err := repo.Create(ctx, c); err != nil {
		log.Fatalf("seed category %s: %v", slug, err)
	}
	fmt.Printf("seeded category: %s id=%s\n", slug, c.ID())
	return c
}
