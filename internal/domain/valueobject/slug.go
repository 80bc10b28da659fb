package valueobject

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
)

// slugFallback is substituted when slugification of a name yields nothing,
// e.g. a name made entirely of symbols.
const slugFallback = "n-a"

var (
	slugPattern     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	slugSeparators  = regexp.MustCompile(`[\s_]+`)
	slugInvalidRune = regexp.MustCompile(`[^a-z0-9-]`)
	slugHyphenRuns  = regexp.MustCompile(`-{2,}`)

	// stripDiacritics decomposes to NFD, removes combining marks, and
	// recomposes, turning "Điện Thoại" into "Đien Thoai" (đ is handled
	// separately since it is not a combining form).
	stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	dReplacer = strings.NewReplacer("đ", "d", "Đ", "D")
)

// Slugify derives a deterministic URL-safe slug from a display name.
func Slugify(name string) string {
	s := dReplacer.Replace(name)
	if folded, _, err := transform.String(stripDiacritics, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	s = slugSeparators.ReplaceAllString(s, "-")
	s = slugInvalidRune.ReplaceAllString(s, "")
	s = slugHyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return slugFallback
	}
	return s
}

// CategorySlug is the URL identifier of a category.
type CategorySlug struct {
	value string
}

// NewCategorySlug validates an externally supplied slug.
func NewCategorySlug(value string) (CategorySlug, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return CategorySlug{}, domainerr.Validation("Category slug cannot be empty")
	}
	if !slugPattern.MatchString(v) {
		return CategorySlug{}, domainerr.Validationf("Invalid category slug: %s", value)
	}
	return CategorySlug{value: v}, nil
}

// CategorySlugFromName derives the slug from a name; it cannot fail because
// Slugify always produces a valid non-empty slug.
func CategorySlugFromName(name CategoryName) CategorySlug {
	return CategorySlug{value: Slugify(name.Value())}
}

func (s CategorySlug) Value() string                 { return s.value }
func (s CategorySlug) String() string                { return s.value }
func (s CategorySlug) Equal(other CategorySlug) bool { return s.value == other.value }
func (s CategorySlug) IsZero() bool                  { return s.value == "" }

// ProductSlug is the URL identifier of a product.
type ProductSlug struct {
	value string
}

func NewProductSlug(value string) (ProductSlug, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return ProductSlug{}, domainerr.Validation("Product slug cannot be empty")
	}
	if !slugPattern.MatchString(v) {
		return ProductSlug{}, domainerr.Validationf("Invalid product slug: %s", value)
	}
	return ProductSlug{value: v}, nil
}

func ProductSlugFromName(name ProductName) ProductSlug {
	return ProductSlug{value: Slugify(name.Value())}
}

func (s ProductSlug) Value() string                { return s.value }
func (s ProductSlug) String() string               { return s.value }
func (s ProductSlug) Equal(other ProductSlug) bool { return s.value == other.value }
func (s ProductSlug) IsZero() bool                 { return s.value == "" }
