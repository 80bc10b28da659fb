package event

// Category aggregate events.

type CategoryCreated struct {
	base
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func NewCategoryCreated(categoryID, name, slug string) CategoryCreated {
	return CategoryCreated{base: newBase(categoryID), Name: name, Slug: slug}
}

func (CategoryCreated) EventName() string { return "category.created" }

type CategoryStatusChanged struct {
	base
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

func NewCategoryStatusChanged(categoryID, oldStatus, newStatus string) CategoryStatusChanged {
	return CategoryStatusChanged{base: newBase(categoryID), OldStatus: oldStatus, NewStatus: newStatus}
}

func (CategoryStatusChanged) EventName() string { return "category.status_changed" }

// CategoryDeleted carries the name so downstream consumers can log or
// display what was removed without a lookup.
type CategoryDeleted struct {
	base
	Name string `json:"name"`
}

func NewCategoryDeleted(categoryID, name string) CategoryDeleted {
	return CategoryDeleted{base: newBase(categoryID), Name: name}
}

func (CategoryDeleted) EventName() string { return "category.deleted" }

type CategoryUpdated struct {
	base
	NewName string `json:"new_name"`
}

func NewCategoryUpdated(categoryID, newName string) CategoryUpdated {
	return CategoryUpdated{base: newBase(categoryID), NewName: newName}
}

func (CategoryUpdated) EventName() string { return "category.updated" }

type CategorySlugChanged struct {
	base
	NewSlug string `json:"new_slug"`
}

func NewCategorySlugChanged(categoryID, newSlug string) CategorySlugChanged {
	return CategorySlugChanged{base: newBase(categoryID), NewSlug: newSlug}
}

func (CategorySlugChanged) EventName() string { return "category.slug_changed" }

type CategoryParentChanged struct {
	base
	// Old/NewParentID are nil for a root category.
	OldParentID *string `json:"old_parent_id"`
	NewParentID *string `json:"new_parent_id"`
}

func NewCategoryParentChanged(categoryID string, oldParentID, newParentID *string) CategoryParentChanged {
	return CategoryParentChanged{base: newBase(categoryID), OldParentID: oldParentID, NewParentID: newParentID}
}

func (CategoryParentChanged) EventName() string { return "category.parent_changed" }
