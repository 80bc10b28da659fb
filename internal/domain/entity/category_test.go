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

func TestNewCategory(t *testing.T) {
	name, err := valueobject.NewCategoryName("Điện Thoại")
	require.NoError(t, err)

	c, err := NewCategory(name, valueobject.CategorySlug{}, nil, nil, 10)
	require.NoError(t, err)

	assert.Equal(t, CategoryStatusActive, c.Status())
	assert.Equal(t, "dien-thoai", c.Slug().Value())
	assert.True(t, c.IsRoot())
	assert.Equal(t, 10, c.SortOrder())

	events := c.Events()
	require.Len(t, events, 1)
	created, ok := events[0].(event.CategoryCreated)
	require.True(t, ok)
	assert.Equal(t, "Điện Thoại", created.Name)
	assert.Equal(t, "dien-thoai", created.Slug)

	_, err = NewCategory(valueobject.CategoryName{}, valueobject.CategorySlug{}, nil, nil, 0)
	require.Error(t, err)
	assert.True(t, domainerr.IsNullArgument(err))
}

func TestCategoryIdempotentTransitions(t *testing.T) {
	c := newTestCategory(t, "Books")
	c.ClearEvents()

	// Activate on an already-active category: nothing observable.
	before := c.UpdatedAt()
	c.Activate()
	assert.Equal(t, before, c.UpdatedAt())
	assert.Empty(t, c.Events())

	c.Deactivate()
	require.Equal(t, CategoryStatusInactive, c.Status())
	afterFirst := c.UpdatedAt()
	require.Len(t, c.Events(), 1)

	c.Deactivate()
	assert.Equal(t, afterFirst, c.UpdatedAt())
	assert.Len(t, c.Events(), 1)

	changed, ok := c.Events()[0].(event.CategoryStatusChanged)
	require.True(t, ok)
	assert.Equal(t, "active", changed.OldStatus)
	assert.Equal(t, "inactive", changed.NewStatus)
}

func TestCategoryDelete(t *testing.T) {
	c := newTestCategory(t, "Clearance")
	c.ClearEvents()

	c.Delete()
	require.Equal(t, CategoryStatusDeleted, c.Status())
	events := c.Events()
	require.Len(t, events, 1)
	deleted, ok := events[0].(event.CategoryDeleted)
	require.True(t, ok)
	assert.Equal(t, "Clearance", deleted.Name)

	// Idempotent.
	after := c.UpdatedAt()
	c.Delete()
	assert.Equal(t, after, c.UpdatedAt())
	assert.Len(t, c.Events(), 1)
}

func TestCategoryUpdates(t *testing.T) {
	c := newTestCategory(t, "Old Name")
	c.ClearEvents()

	newName, err := valueobject.NewCategoryName("New Name")
	require.NoError(t, err)
	require.NoError(t, c.UpdateName(newName))
	assert.Equal(t, "New Name", c.Name().Value())

	newSlug, err := valueobject.NewCategorySlug("new-name")
	require.NoError(t, err)
	require.NoError(t, c.UpdateSlug(newSlug))

	desc := "all the new things"
	c.UpdateDescription(&desc)
	require.NotNil(t, c.Description())
	assert.Equal(t, desc, *c.Description())
	c.UpdateDescription(nil)
	assert.Nil(t, c.Description())

	c.UpdateSortOrder(5)
	assert.Equal(t, 5, c.SortOrder())

	events := c.Events()
	require.Len(t, events, 2)
	renamed, ok := events[0].(event.CategoryUpdated)
	require.True(t, ok)
	assert.Equal(t, "New Name", renamed.NewName)
	reslugged, ok := events[1].(event.CategorySlugChanged)
	require.True(t, ok)
	assert.Equal(t, "new-name", reslugged.NewSlug)

	require.Error(t, c.UpdateName(valueobject.CategoryName{}))
	require.Error(t, c.UpdateSlug(valueobject.CategorySlug{}))
}

func TestCategoryChangeParent(t *testing.T) {
	c := newTestCategory(t, "Child")
	c.ClearEvents()

	parent := "parent-1"
	c.ChangeParent(&parent)
	require.NotNil(t, c.ParentID())
	assert.Equal(t, "parent-1", *c.ParentID())
	afterFirst := c.UpdatedAt()
	require.Len(t, c.Events(), 1)

	// Requesting the current parent again: exactly one event, one bump.
	c.ChangeParent(&parent)
	assert.Equal(t, afterFirst, c.UpdatedAt())
	assert.Len(t, c.Events(), 1)

	moved, ok := c.Events()[0].(event.CategoryParentChanged)
	require.True(t, ok)
	assert.Nil(t, moved.OldParentID)
	require.NotNil(t, moved.NewParentID)
	assert.Equal(t, "parent-1", *moved.NewParentID)

	// Back to root.
	c.ChangeParent(nil)
	assert.Nil(t, c.ParentID())
	require.Len(t, c.Events(), 2)

	// Already root: no-op.
	beforeRoot := c.UpdatedAt()
	c.ChangeParent(nil)
	assert.Equal(t, beforeRoot, c.UpdatedAt())
	assert.Len(t, c.Events(), 2)
}

func TestCategoryEventOrdering(t *testing.T) {
	name, err := valueobject.NewCategoryName("Ordered")
	require.NoError(t, err)
	c, err := NewCategory(name, valueobject.CategorySlug{}, nil, nil, 0)
	require.NoError(t, err)

	c.Deactivate()
	c.Activate()
	c.Delete()

	var names []string
	for _, e := range c.Events() {
		names = append(names, e.EventName())
	}
	assert.Equal(t, []string{
		"category.created",
		"category.status_changed",
		"category.status_changed",
		"category.deleted",
	}, names)

	c.ClearEvents()
	assert.Empty(t, c.Events())
}

func TestRehydrateCategoryRecordsNoEvents(t *testing.T) {
	name, err := valueobject.NewCategoryName("Stored")
	require.NoError(t, err)
	slug, err := valueobject.NewCategorySlug("stored")
	require.NoError(t, err)
	parent := "parent-1"
	stored := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	c := RehydrateCategory("id-1", name, slug, nil, &parent, 3, CategoryStatusInactive, stored, stored)
	assert.Empty(t, c.Events())
	assert.Equal(t, CategoryStatusInactive, c.Status())
	require.NotNil(t, c.ParentID())
	assert.Equal(t, "parent-1", *c.ParentID())
}
