package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/event"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/valueobject"
)

type CategoryStatus uint8

const (
	CategoryStatusActive CategoryStatus = iota + 1
	CategoryStatusInactive
	CategoryStatusDeleted
)

func (s CategoryStatus) String() string {
	switch s {
	case CategoryStatusActive:
		return "active"
	case CategoryStatusInactive:
		return "inactive"
	case CategoryStatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Category is a node in a mutable tree. The parent link is an id-only weak
// reference: categories can be reparented at runtime, and holding the parent
// object itself would make the ownership graph cycle-prone. Cycle checks on
// reparent belong to the repository layer; this aggregate only records the
// requested id.
//
// Not safe for concurrent mutation; one writer per unit of work.
type Category struct {
	event.Buffer

	id          string
	name        valueobject.CategoryName
	slug        valueobject.CategorySlug
	description *string
	parentID    *string
	sortOrder   int
	status      CategoryStatus
	createdAt   time.Time
	updatedAt   time.Time
}

// NewCategory creates an active category and records CategoryCreated.
// Pass a zero slug to derive one from the name.
func NewCategory(name valueobject.CategoryName, slug valueobject.CategorySlug, description *string, parentID *string, sortOrder int) (*Category, error) {
	if name.IsZero() {
		return nil, domainerr.NullArgument("name")
	}
	if slug.IsZero() {
		slug = valueobject.CategorySlugFromName(name)
	}
	now := time.Now().UTC()
	c := &Category{
		id:          uuid.NewString(),
		name:        name,
		slug:        slug,
		description: copyString(description),
		parentID:    copyString(parentID),
		sortOrder:   sortOrder,
		status:      CategoryStatusActive,
		createdAt:   now,
		updatedAt:   now,
	}
	c.Record(event.NewCategoryCreated(c.id, c.name.Value(), c.slug.Value()))
	return c, nil
}

// RehydrateCategory rebuilds a category from stored fields without
// validation or events; only the persistence layer calls it.
func RehydrateCategory(
	id string,
	name valueobject.CategoryName,
	slug valueobject.CategorySlug,
	description *string,
	parentID *string,
	sortOrder int,
	status CategoryStatus,
	createdAt, updatedAt time.Time,
) *Category {
	return &Category{
		id:          id,
		name:        name,
		slug:        slug,
		description: description,
		parentID:    parentID,
		sortOrder:   sortOrder,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func (c *Category) ID() string                     { return c.id }
func (c *Category) Name() valueobject.CategoryName { return c.name }
func (c *Category) Slug() valueobject.CategorySlug { return c.slug }
func (c *Category) Description() *string           { return copyString(c.description) }
func (c *Category) ParentID() *string              { return copyString(c.parentID) }
func (c *Category) SortOrder() int                 { return c.sortOrder }
func (c *Category) Status() CategoryStatus         { return c.status }
func (c *Category) CreatedAt() time.Time           { return c.createdAt }
func (c *Category) UpdatedAt() time.Time           { return c.updatedAt }

func (c *Category) IsActive() bool { return c.status == CategoryStatusActive }
func (c *Category) IsRoot() bool   { return c.parentID == nil }

func (c *Category) touch() {
	now := time.Now().UTC()
	if !now.After(c.updatedAt) {
		now = c.updatedAt.Add(time.Nanosecond)
	}
	c.updatedAt = now
}

// Activate moves the category to Active. Idempotent: no timestamp bump or
// event when already active.
func (c *Category) Activate() {
	if c.status == CategoryStatusActive {
		return
	}
	from := c.status
	c.status = CategoryStatusActive
	c.touch()
	c.Record(event.NewCategoryStatusChanged(c.id, from.String(), c.status.String()))
}

// Deactivate moves the category to Inactive. Idempotent.
func (c *Category) Deactivate() {
	if c.status == CategoryStatusInactive {
		return
	}
	from := c.status
	c.status = CategoryStatusInactive
	c.touch()
	c.Record(event.NewCategoryStatusChanged(c.id, from.String(), c.status.String()))
}

// Delete soft-deletes the category, recording CategoryDeleted with the
// category's name. Idempotent.
func (c *Category) Delete() {
	if c.status == CategoryStatusDeleted {
		return
	}
	c.status = CategoryStatusDeleted
	c.touch()
	c.Record(event.NewCategoryDeleted(c.id, c.name.Value()))
}

// UpdateName renames the category and records CategoryUpdated.
func (c *Category) UpdateName(name valueobject.CategoryName) error {
	if name.IsZero() {
		return domainerr.NullArgument("name")
	}
	c.name = name
	c.touch()
	c.Record(event.NewCategoryUpdated(c.id, name.Value()))
	return nil
}

// UpdateSlug replaces the slug and records CategorySlugChanged.
func (c *Category) UpdateSlug(slug valueobject.CategorySlug) error {
	if slug.IsZero() {
		return domainerr.NullArgument("slug")
	}
	c.slug = slug
	c.touch()
	c.Record(event.NewCategorySlugChanged(c.id, slug.Value()))
	return nil
}

// UpdateDescription replaces the description; pass nil to clear it.
func (c *Category) UpdateDescription(description *string) {
	c.description = copyString(description)
	c.touch()
}

// UpdateSortOrder replaces the ordering weight among siblings.
func (c *Category) UpdateSortOrder(sortOrder int) {
	c.sortOrder = sortOrder
	c.touch()
}

// ChangeParent reparents the category by id; pass nil to make it a root.
// Requesting the current parent is a no-op with no timestamp bump or event.
// Cycle prevention is the repository's concern.
func (c *Category) ChangeParent(parentID *string) {
	if equalStringPtr(c.parentID, parentID) {
		return
	}
	old := c.parentID
	c.parentID = copyString(parentID)
	c.touch()
	c.Record(event.NewCategoryParentChanged(c.id, old, c.parentID))
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
