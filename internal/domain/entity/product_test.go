package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/event"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/valueobject"
)

func newTestProduct(t *testing.T) *Product {
	t.Helper()
	name, err := valueobject.NewProductName("Điện Thoại Thông Minh")
	require.NoError(t, err)
	p, err := NewProduct(name, ProductTypePhysical)
	require.NoError(t, err)
	return p
}

func newTestSku(t *testing.T, code string) *Sku {
	t.Helper()
	price, err := valueobject.NewMoneyFromFloat(990000, "VND")
	require.NoError(t, err)
	sku, err := NewSku(code, price)
	require.NoError(t, err)
	return sku
}

func newTestCategory(t *testing.T, name string) *Category {
	t.Helper()
	n, err := valueobject.NewCategoryName(name)
	require.NoError(t, err)
	c, err := NewCategory(n, valueobject.CategorySlug{}, nil, nil, 0)
	require.NoError(t, err)
	return c
}

func TestNewProduct(t *testing.T) {
	p := newTestProduct(t)

	assert.Equal(t, ProductStatusDraft, p.Status())
	assert.Equal(t, "dien-thoai-thong-minh", p.Slug().Value())
	assert.Nil(t, p.ReturnDays())

	events := p.Events()
	require.Len(t, events, 1)
	created, ok := events[0].(event.ProductCreated)
	require.True(t, ok)
	assert.Equal(t, p.ID(), created.AggregateID())
	assert.Equal(t, "dien-thoai-thong-minh", created.Slug)
}

func TestProductActivation(t *testing.T) {
	p := newTestProduct(t)

	require.NoError(t, p.Activate())
	assert.Equal(t, ProductStatusActive, p.Status())
	assert.True(t, p.IsActive())

	// Idempotent from Active.
	after := p.UpdatedAt()
	p.ClearEvents()
	require.NoError(t, p.Activate())
	assert.Equal(t, after, p.UpdatedAt())
	assert.Empty(t, p.Events())

	p.Deactivate()
	assert.Equal(t, ProductStatusInactive, p.Status())
	require.NoError(t, p.Activate())
	assert.Equal(t, ProductStatusActive, p.Status())
}

func TestProductDiscontinueIsTerminal(t *testing.T) {
	p := newTestProduct(t)
	p.Discontinue()
	require.Equal(t, ProductStatusDiscontinued, p.Status())

	err := p.Activate()
	require.Error(t, err)
	assert.True(t, domainerr.IsIllegalState(err))
	assert.EqualError(t, err, "Cannot activate a discontinued product")

	// Discontinuing again is a no-op.
	before := p.UpdatedAt()
	p.ClearEvents()
	p.Discontinue()
	assert.Equal(t, before, p.UpdatedAt())
	assert.Empty(t, p.Events())
}

func TestProductUpdateReturnDays(t *testing.T) {
	p := newTestProduct(t)

	days := 30
	require.NoError(t, p.UpdateReturnDays(&days))
	require.NotNil(t, p.ReturnDays())
	assert.Equal(t, 30, *p.ReturnDays())

	zero := 0
	require.NoError(t, p.UpdateReturnDays(&zero))

	require.NoError(t, p.UpdateReturnDays(nil))
	assert.Nil(t, p.ReturnDays())

	negative := -1
	err := p.UpdateReturnDays(&negative)
	require.Error(t, err)
	assert.True(t, domainerr.IsValidation(err))
}

func TestProductAddSku(t *testing.T) {
	p := newTestProduct(t)
	p.ClearEvents()

	err := p.AddSku(nil)
	require.Error(t, err)
	assert.True(t, domainerr.IsNullArgument(err))

	sku := newTestSku(t, "SKU-001")
	require.NoError(t, p.AddSku(sku))
	require.Len(t, p.Skus(), 1)

	events := p.Events()
	require.Len(t, events, 1)
	added, ok := events[0].(event.ProductSkuAdded)
	require.True(t, ok)
	assert.Equal(t, "SKU-001", added.SkuCode)
}

func TestProductCategorySetSemantics(t *testing.T) {
	p := newTestProduct(t)
	cat := newTestCategory(t, "Phones")
	p.ClearEvents()

	require.NoError(t, p.AddCategory(cat))
	require.Len(t, p.CategoryIDs(), 1)
	afterFirst := p.UpdatedAt()
	require.Len(t, p.Events(), 1)

	// Adding a member twice leaves the set, timestamp and events unchanged.
	require.NoError(t, p.AddCategory(cat))
	assert.Len(t, p.CategoryIDs(), 1)
	assert.Equal(t, afterFirst, p.UpdatedAt())
	assert.Len(t, p.Events(), 1)

	// Removing a non-member is a silent no-op.
	other := newTestCategory(t, "Laptops")
	require.NoError(t, p.RemoveCategory(other))
	assert.Len(t, p.CategoryIDs(), 1)
	assert.Equal(t, afterFirst, p.UpdatedAt())

	require.NoError(t, p.RemoveCategory(cat))
	assert.Empty(t, p.CategoryIDs())

	err := p.AddCategory(nil)
	require.Error(t, err)
	assert.True(t, domainerr.IsNullArgument(err))
	err = p.RemoveCategory(nil)
	require.Error(t, err)
	assert.True(t, domainerr.IsNullArgument(err))
}

func TestProductCanBeOrdered(t *testing.T) {
	p := newTestProduct(t)
	assert.False(t, p.CanBeOrdered(), "draft product")

	require.NoError(t, p.Activate())
	assert.False(t, p.CanBeOrdered(), "active but no skus")

	sku := newTestSku(t, "SKU-001")
	require.NoError(t, p.AddSku(sku))
	assert.True(t, p.CanBeOrdered())

	sku.Deactivate()
	assert.False(t, p.CanBeOrdered(), "only inactive skus")

	sku.Activate()
	p.Deactivate()
	assert.False(t, p.CanBeOrdered(), "inactive product")
}

func TestRehydrateProductRecordsNoEvents(t *testing.T) {
	name, err := valueobject.NewProductName("Stored")
	require.NoError(t, err)
	slug, err := valueobject.NewProductSlug("stored")
	require.NoError(t, err)

	stored := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := RehydrateProduct("id-1", name, slug, ProductTypeDigital, ProductStatusActive, nil, nil, []string{"cat-1"}, stored, stored)
	assert.Empty(t, p.Events())
	assert.Equal(t, ProductStatusActive, p.Status())
	assert.Equal(t, []string{"cat-1"}, p.CategoryIDs())
}
