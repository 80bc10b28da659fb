package event

// Product aggregate events.

type ProductCreated struct {
	base
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func NewProductCreated(productID, name, slug string) ProductCreated {
	return ProductCreated{base: newBase(productID), Name: name, Slug: slug}
}

func (ProductCreated) EventName() string { return "product.created" }

type ProductStatusChanged struct {
	base
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

func NewProductStatusChanged(productID, oldStatus, newStatus string) ProductStatusChanged {
	return ProductStatusChanged{base: newBase(productID), OldStatus: oldStatus, NewStatus: newStatus}
}

func (ProductStatusChanged) EventName() string { return "product.status_changed" }

type ProductSkuAdded struct {
	base
	SkuID   string `json:"sku_id"`
	SkuCode string `json:"sku_code"`
}

func NewProductSkuAdded(productID, skuID, skuCode string) ProductSkuAdded {
	return ProductSkuAdded{base: newBase(productID), SkuID: skuID, SkuCode: skuCode}
}

func (ProductSkuAdded) EventName() string { return "product.sku_added" }

type ProductCategoryAdded struct {
	base
	CategoryID string `json:"category_id"`
}

func NewProductCategoryAdded(productID, categoryID string) ProductCategoryAdded {
	return ProductCategoryAdded{base: newBase(productID), CategoryID: categoryID}
}

func (ProductCategoryAdded) EventName() string { return "product.category_added" }

type ProductCategoryRemoved struct {
	base
	CategoryID string `json:"category_id"`
}

func NewProductCategoryRemoved(productID, categoryID string) ProductCategoryRemoved {
	return ProductCategoryRemoved{base: newBase(productID), CategoryID: categoryID}
}

func (ProductCategoryRemoved) EventName() string { return "product.category_removed" }

type ProductReturnPolicyChanged struct {
	base
	// ReturnDays is nil when the return policy was cleared.
	ReturnDays *int `json:"return_days"`
}

func NewProductReturnPolicyChanged(productID string, returnDays *int) ProductReturnPolicyChanged {
	return ProductReturnPolicyChanged{base: newBase(productID), ReturnDays: returnDays}
}

func (ProductReturnPolicyChanged) EventName() string { return "product.return_policy_changed" }
