package valueobject

import (
	"strings"
	"unicode/utf8"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
)

const (
	categoryNameMaxLen = 100
	productNameMaxLen  = 255
)

// CategoryName is a non-empty display name bounded to 100 characters.
type CategoryName struct {
	value string
}

func NewCategoryName(value string) (CategoryName, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return CategoryName{}, domainerr.Validation("Category name cannot be empty")
	}
	if utf8.RuneCountInString(v) > categoryNameMaxLen {
		return CategoryName{}, domainerr.Validationf("Category name cannot exceed %d characters", categoryNameMaxLen)
	}
	return CategoryName{value: v}, nil
}

func (n CategoryName) Value() string                 { return n.value }
func (n CategoryName) String() string                { return n.value }
func (n CategoryName) Equal(other CategoryName) bool { return n.value == other.value }
func (n CategoryName) IsZero() bool                  { return n.value == "" }

// ProductName is a non-empty display name bounded to 255 characters.
type ProductName struct {
	value string
}

func NewProductName(value string) (ProductName, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return ProductName{}, domainerr.Validation("Product name cannot be empty")
	}
	if utf8.RuneCountInString(v) > productNameMaxLen {
		return ProductName{}, domainerr.Validationf("Product name cannot exceed %d characters", productNameMaxLen)
	}
	return ProductName{value: v}, nil
}

func (n ProductName) Value() string                { return n.value }
func (n ProductName) String() string               { return n.value }
func (n ProductName) Equal(other ProductName) bool { return n.value == other.value }
func (n ProductName) IsZero() bool                 { return n.value == "" }
