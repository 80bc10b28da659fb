package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/valueobject"
)

// Sku is a sellable variant owned by a Product. It has no event buffer of
// its own; observable changes surface through the owning product.
type Sku struct {
	id        string
	code      string
	price     valueobject.Money
	active    bool
	createdAt time.Time
}

// NewSku creates an active SKU with the given code and price.
func NewSku(code string, price valueobject.Money) (*Sku, error) {
	c := strings.TrimSpace(code)
	if c == "" {
		return nil, domainerr.Validation("SKU code cannot be empty")
	}
	return &Sku{
		id:        uuid.NewString(),
		code:      c,
		price:     price,
		active:    true,
		createdAt: time.Now().UTC(),
	}, nil
}

// RehydrateSku rebuilds a SKU from stored fields.
func RehydrateSku(id, code string, price valueobject.Money, active bool, createdAt time.Time) *Sku {
	return &Sku{id: id, code: code, price: price, active: active, createdAt: createdAt}
}

func (s *Sku) ID() string               { return s.id }
func (s *Sku) Code() string             { return s.code }
func (s *Sku) Price() valueobject.Money { return s.price }
func (s *Sku) IsActive() bool           { return s.active }
func (s *Sku) CreatedAt() time.Time     { return s.createdAt }

// Activate and Deactivate toggle sellability of this variant.
func (s *Sku) Activate()   { s.active = true }
func (s *Sku) Deactivate() { s.active = false }

// UpdatePrice replaces the price.
func (s *Sku) UpdatePrice(price valueobject.Money) { s.price = price }
