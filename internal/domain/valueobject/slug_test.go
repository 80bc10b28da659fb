package valueobject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Phones", want: "phones"},
		{name: "spaces to hyphens", input: "Mobile Phones", want: "mobile-phones"},
		{name: "vietnamese diacritics", input: "Điện Thoại", want: "dien-thoai"},
		{name: "mixed diacritics", input: "Thời Trang Nữ", want: "thoi-trang-nu"},
		{name: "underscores collapse", input: "home__appliances", want: "home-appliances"},
		{name: "symbols stripped", input: "TVs & Audio!", want: "tvs-audio"},
		{name: "repeated hyphens collapse", input: "a -- b", want: "a-b"},
		{name: "leading trailing trimmed", input: " -hello- ", want: "hello"},
		{name: "digits kept", input: "Top 10 Deals", want: "top-10-deals"},
		{name: "empty result falls back", input: "!!!", want: "n-a"},
		{name: "deterministic", input: "Điện Thoại", want: Slugify("Điện Thoại")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestCategorySlugFromName(t *testing.T) {
	name, err := NewCategoryName("Đồ Gia Dụng")
	require.NoError(t, err)
	slug := CategorySlugFromName(name)
	assert.Equal(t, "do-gia-dung", slug.Value())
}

func TestNewCategorySlug(t *testing.T) {
	s, err := NewCategorySlug("mobile-phones")
	require.NoError(t, err)
	assert.Equal(t, "mobile-phones", s.Value())

	for _, bad := range []string{"", "  ", "UPPER", "has space", "-leading", "trailing-", "double--hyphen", "việt"} {
		_, err := NewCategorySlug(bad)
		require.Error(t, err, "input %q", bad)
		assert.True(t, domainerr.IsValidation(err))
	}
}

func TestProductSlugFromName(t *testing.T) {
	name, err := NewProductName("Áo Sơ Mi Trắng")
	require.NoError(t, err)
	assert.Equal(t, "ao-so-mi-trang", ProductSlugFromName(name).Value())
}

func TestNames(t *testing.T) {
	_, err := NewCategoryName("")
	require.Error(t, err)
	_, err = NewCategoryName("   ")
	require.Error(t, err)
	_, err = NewCategoryName(strings.Repeat("a", 101))
	require.Error(t, err)
	n, err := NewCategoryName(strings.Repeat("a", 100))
	require.NoError(t, err)
	assert.Equal(t, 100, len(n.Value()))

	_, err = NewProductName("")
	require.Error(t, err)
	_, err = NewProductName(strings.Repeat("b", 256))
	require.Error(t, err)
	p, err := NewProductName("  iPhone 15 Pro  ")
	require.NoError(t, err)
	assert.Equal(t, "iPhone 15 Pro", p.Value())
}
