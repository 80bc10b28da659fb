package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/event"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/valueobject"
)

// ProductType is a byte code distinguishing fulfilment models.
type ProductType uint8

const (
	ProductTypePhysical ProductType = iota + 1
	ProductTypeDigital
	ProductTypeService
)

func (t ProductType) String() string {
	switch t {
	case ProductTypePhysical:
		return "physical"
	case ProductTypeDigital:
		return "digital"
	case ProductTypeService:
		return "service"
	default:
		return "unknown"
	}
}

type ProductStatus uint8

const (
	ProductStatusDraft ProductStatus = iota + 1
	ProductStatusActive
	ProductStatusInactive
	ProductStatusDiscontinued
)

func (s ProductStatus) String() string {
	switch s {
	case ProductStatusDraft:
		return "draft"
	case ProductStatusActive:
		return "active"
	case ProductStatusInactive:
		return "inactive"
	case ProductStatusDiscontinued:
		return "discontinued"
	default:
		return "unknown"
	}
}

// Product is the catalog aggregate root. It owns its SKUs and holds category
// membership as a deduplicated set of ids.
//
// Not safe for concurrent mutation; one writer per unit of work.
type Product struct {
	event.Buffer

	id          string
	name        valueobject.ProductName
	slug        valueobject.ProductSlug
	productType ProductType
	status      ProductStatus
	returnDays  *int
	skus        []*Sku
	categoryIDs []string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProduct creates a draft product with a slug derived from the name and
// records ProductCreated.
func NewProduct(name valueobject.ProductName, productType ProductType) (*Product, error) {
	if name.IsZero() {
		return nil, domainerr.NullArgument("name")
	}
	now := time.Now().UTC()
	p := &Product{
		id:          uuid.NewString(),
		name:        name,
		slug:        valueobject.ProductSlugFromName(name),
		productType: productType,
		status:      ProductStatusDraft,
		createdAt:   now,
		updatedAt:   now,
	}
	p.Record(event.NewProductCreated(p.id, p.name.Value(), p.slug.Value()))
	return p, nil
}

// RehydrateProduct rebuilds a product from stored fields without validation
// or events; only the persistence layer calls it.
func RehydrateProduct(
	id string,
	name valueobject.ProductName,
	slug valueobject.ProductSlug,
	productType ProductType,
	status ProductStatus,
	returnDays *int,
	skus []*Sku,
	categoryIDs []string,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:          id,
		name:        name,
		slug:        slug,
		productType: productType,
		status:      status,
		returnDays:  returnDays,
		skus:        skus,
		categoryIDs: categoryIDs,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (p *Product) ID() string                    { return p.id }
func (p *Product) Name() valueobject.ProductName { return p.name }
func (p *Product) Slug() valueobject.ProductSlug { return p.slug }
func (p *Product) Type() ProductType             { return p.productType }
func (p *Product) Status() ProductStatus         { return p.status }
func (p *Product) CreatedAt() time.Time          { return p.createdAt }
func (p *Product) UpdatedAt() time.Time          { return p.updatedAt }

// ReturnDays is nil when the product has no return policy.
func (p *Product) ReturnDays() *int {
	if p.returnDays == nil {
		return nil
	}
	v := *p.returnDays
	return &v
}

func (p *Product) Skus() []*Sku {
	out := make([]*Sku, len(p.skus))
	copy(out, p.skus)
	return out
}

func (p *Product) CategoryIDs() []string {
	out := make([]string, len(p.categoryIDs))
	copy(out, p.categoryIDs)
	return out
}

func (p *Product) IsActive() bool { return p.status == ProductStatusActive }

// CanBeOrdered requires an active product with at least one active SKU.
func (p *Product) CanBeOrdered() bool {
	if p.status != ProductStatusActive {
		return false
	}
	for _, sku := range p.skus {
		if sku.IsActive() {
			return true
		}
	}
	return false
}

func (p *Product) touch() {
	now := time.Now().UTC()
	if !now.After(p.updatedAt) {
		now = p.updatedAt.Add(time.Nanosecond)
	}
	p.updatedAt = now
}

func (p *Product) changeStatus(to ProductStatus) {
	from := p.status
	p.status = to
	p.touch()
	p.Record(event.NewProductStatusChanged(p.id, from.String(), to.String()))
}

// Activate moves the product to Active. Idempotent when already active;
// illegal once discontinued.
func (p *Product) Activate() error {
	if p.status == ProductStatusDiscontinued {
		return domainerr.IllegalState("Cannot activate a discontinued product")
	}
	if p.status == ProductStatusActive {
		return nil
	}
	p.changeStatus(ProductStatusActive)
	return nil
}

// Deactivate moves the product to Inactive from any state.
func (p *Product) Deactivate() {
	if p.status == ProductStatusInactive {
		return
	}
	p.changeStatus(ProductStatusInactive)
}

// Discontinue is terminal: the product can never be activated again.
func (p *Product) Discontinue() {
	if p.status == ProductStatusDiscontinued {
		return
	}
	p.changeStatus(ProductStatusDiscontinued)
}

// UpdateReturnDays sets the return policy; pass nil to clear it.
func (p *Product) UpdateReturnDays(days *int) error {
	if days != nil && *days < 0 {
		return domainerr.Validation("Return days cannot be negative")
	}
	if days == nil {
		p.returnDays = nil
	} else {
		v := *days
		p.returnDays = &v
	}
	p.touch()
	p.Record(event.NewProductReturnPolicyChanged(p.id, p.ReturnDays()))
	return nil
}

// AddSku attaches a variant to the product.
func (p *Product) AddSku(sku *Sku) error {
	if sku == nil {
		return domainerr.NullArgument("sku")
	}
	p.skus = append(p.skus, sku)
	p.touch()
	p.Record(event.NewProductSkuAdded(p.id, sku.ID(), sku.Code()))
	return nil
}

// AddCategory attaches the product to a category. Set semantics: adding a
// member twice leaves the set unchanged, with no timestamp bump or event.
func (p *Product) AddCategory(category *Category) error {
	if category == nil {
		return domainerr.NullArgument("category")
	}
	for _, id := range p.categoryIDs {
		if id == category.ID() {
			return nil
		}
	}
	p.categoryIDs = append(p.categoryIDs, category.ID())
	p.touch()
	p.Record(event.NewProductCategoryAdded(p.id, category.ID()))
	return nil
}

// RemoveCategory detaches the product from a category. Removing a
// non-member is a silent no-op.
func (p *Product) RemoveCategory(category *Category) error {
	if category == nil {
		return domainerr.NullArgument("category")
	}
	for i, id := range p.categoryIDs {
		if id == category.ID() {
			p.categoryIDs = append(p.categoryIDs[:i], p.categoryIDs[i+1:]...)
			p.touch()
			p.Record(event.NewProductCategoryRemoved(p.id, category.ID()))
			return nil
		}
	}
	return nil
}
