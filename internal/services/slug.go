package services

import (
	"strings"

	"catalog/internal/common"

	"github.com/gosimple/slug"
)

// Slug column widths in the schema. Slugging can lengthen a name ("&" becomes "and",
// non-Latin text is transliterated), so the derived slug is cut to fit.
const (
	categorySlugMaxLength = 100
	productSlugMaxLength  = 200
)

// makeSlug derives the URL slug for a category or product name, at most maxLength bytes.
// Truncation happens at a word boundary when one exists.
func makeSlug(name string, maxLength int) (string, error) {
	s := slug.Make(strings.TrimSpace(name))
	if len(s) > maxLength {
		s = s[:maxLength]
		if i := strings.LastIndexByte(s, '-'); i > 0 {
			s = s[:i]
		}
		s = strings.TrimRight(s, "-")
	}
	if s == "" {
		return "", common.Invalid("name", "must contain at least one letter or digit")
	}
	return s, nil
}
