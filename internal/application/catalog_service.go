package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/entity"
	repo "github.com/oksasatya/go-marketplace-ddd/internal/domain/repository"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/valueobject"
	"github.com/oksasatya/go-marketplace-ddd/internal/infrastructure/eventbus"
	"github.com/oksasatya/go-marketplace-ddd/pkg/helpers"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogService owns the product lifecycle: creation, status transitions,
// SKU and category membership, image storage and search indexing.
type CatalogService struct {
	Products   repo.ProductRepository
	Categories repo.CategoryRepository
	GCS        *storage.Client
	GCSBucket  string
	Logger     *logrus.Logger
	ES         *elasticsearch.Client
	ESIndex    string
	Events     *eventbus.Publisher
}

func NewCatalogService(products repo.ProductRepository, categories repo.CategoryRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, events *eventbus.Publisher) *CatalogService {
	return &CatalogService{
		Products:   products,
		Categories: categories,
		GCS:        gcs,
		GCSBucket:  gcsBucket,
		Logger:     logger,
		ES:         es,
		ESIndex:    esIndex,
		Events:     events,
	}
}

type CreateProductInput struct {
	Name        string
	ProductType entity.ProductType
	ReturnDays  *int
}

func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	name, err := valueobject.NewProductName(in.Name)
	if err != nil {
		return nil, err
	}
	p, err := entity.NewProduct(name, in.ProductType)
	if err != nil {
		return nil, err
	}
	if in.ReturnDays != nil {
		if err := p.UpdateReturnDays(in.ReturnDays); err != nil {
			return nil, err
		}
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.finish(ctx, p)
	return p, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	p, err := s.Products.GetBySlug(ctx, slug)
	if err != nil || p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Products.ListByCategory(ctx, categoryID, limit, offset)
}

// Activate, Deactivate and Discontinue mutate through the aggregate so an
// illegal transition (activating a discontinued product) fails before any
// write happens.

func (s *CatalogService) Activate(ctx context.Context, id string) (*entity.Product, error) {
	return s.mutate(ctx, id, func(p *entity.Product) error { return p.Activate() })
}

func (s *CatalogService) Deactivate(ctx context.Context, id string) (*entity.Product, error) {
	return s.mutate(ctx, id, func(p *entity.Product) error { p.Deactivate(); return nil })
}

func (s *CatalogService) Discontinue(ctx context.Context, id string) (*entity.Product, error) {
	return s.mutate(ctx, id, func(p *entity.Product) error { p.Discontinue(); return nil })
}

func (s *CatalogService) UpdateReturnDays(ctx context.Context, id string, days *int) (*entity.Product, error) {
	return s.mutate(ctx, id, func(p *entity.Product) error { return p.UpdateReturnDays(days) })
}

type AddSkuInput struct {
	Code     string
	Amount   string
	Currency string
}

func (s *CatalogService) AddSku(ctx context.Context, productID string, in AddSkuInput) (*entity.Product, error) {
	price, err := valueobject.NewMoneyFromString(in.Amount, in.Currency)
	if err != nil {
		return nil, err
	}
	sku, err := entity.NewSku(in.Code, price)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, productID, func(p *entity.Product) error { return p.AddSku(sku) })
}

func (s *CatalogService) AddToCategory(ctx context.Context, productID, categoryID string) (*entity.Product, error) {
	cat, err := s.Categories.GetByID(ctx, categoryID)
	if err != nil || cat == nil {
		return nil, ErrCategoryNotFound
	}
	return s.mutate(ctx, productID, func(p *entity.Product) error { return p.AddCategory(cat) })
}

func (s *CatalogService) RemoveFromCategory(ctx context.Context, productID, categoryID string) (*entity.Product, error) {
	cat, err := s.Categories.GetByID(ctx, categoryID)
	if err != nil || cat == nil {
		return nil, ErrCategoryNotFound
	}
	return s.mutate(ctx, productID, func(p *entity.Product) error { return p.RemoveCategory(cat) })
}

func (s *CatalogService) mutate(ctx context.Context, id string, fn func(*entity.Product) error) (*entity.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.finish(ctx, p)
	return p, nil
}

// finish drains the aggregate's events and refreshes the search index.
func (s *CatalogService) finish(ctx context.Context, p *entity.Product) {
	if s.Events != nil {
		s.Events.Drain(ctx, p)
	} else {
		p.ClearEvents()
	}
	_ = s.indexProduct(ctx, p)
}

// UploadImage stores a product image in GCS and returns its public URL.
func (s *CatalogService) UploadImage(ctx context.Context, productID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return "", err
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("products", productID, id+ext))
	return helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}

func (s *CatalogService) indexProduct(ctx context.Context, p *entity.Product) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	skus := make([]map[string]any, 0, len(p.Skus()))
	for _, sku := range p.Skus() {
		skus = append(skus, map[string]any{
			"code":     sku.Code(),
			"price":    sku.Price().Amount().String(),
			"currency": sku.Price().Currency(),
			"active":   sku.IsActive(),
		})
	}
	doc := map[string]any{
		"id":           p.ID(),
		"name":         p.Name().Value(),
		"slug":         p.Slug().Value(),
		"type":         p.Type().String(),
		"status":       p.Status().String(),
		"category_ids": p.CategoryIDs(),
		"orderable":    p.CanBeOrdered(),
		"skus":         skus,
		"created_at":   p.CreatedAt().Format(time.RFC3339Nano),
		"updated_at":   p.UpdatedAt().Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID()).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID()).Warn("es index response error")
	}
	return nil
}

// SearchProducts runs a multi_match over name and slug.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "slug"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
