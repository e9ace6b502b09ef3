package services

import (
	"errors"
	"strings"
	"testing"

	"catalog/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeSlug(t *testing.T) {
	tests := map[string]string{
		"Electronics":         "electronics",
		"  Phone X  ":         "phone-x",
		"Home & Garden":       "home-and-garden",
		"Crème brûlée":        "creme-brulee",
		"Multiple   Spaces!!": "multiple-spaces",
	}
	for in, want := range tests {
		got, err := makeSlug(in, categorySlugMaxLength)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)

		again, err := makeSlug(got, categorySlugMaxLength)
		require.NoError(t, err)
		assert.Equal(t, got, again, "slugging %q twice", in)
	}
}

func TestMakeSlug_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "???"} {
		_, err := makeSlug(in, categorySlugMaxLength)
		assert.True(t, errors.Is(err, common.ErrInvalid), in)
	}
}

func TestMakeSlug_FitsColumn(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		maxLength int
	}{
		{"ampersands expand", strings.Repeat("a&", 50), categorySlugMaxLength},
		{"transliteration expands", strings.Repeat("北京", 50), productSlugMaxLength},
		{"single long word", strings.Repeat("x", 150), categorySlugMaxLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.LessOrEqual(t, len([]rune(tt.in)), tt.maxLength)

			got, err := makeSlug(tt.in, tt.maxLength)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(got), tt.maxLength)
			assert.False(t, strings.HasSuffix(got, "-"), got)
			assert.False(t, strings.HasPrefix(got, "-"), got)

			again, err := makeSlug(got, tt.maxLength)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}

	got, err := makeSlug(strings.Repeat("a&", 50), categorySlugMaxLength)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "a-and-a-and-"), got)
	assert.True(t, strings.HasSuffix(got, "-and") || strings.HasSuffix(got, "-a"), got)
}
