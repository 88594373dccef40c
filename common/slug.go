package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength leaves room for a "-NN" suffix within a 52 char column.
const MaxSlugLength = 48

var (
	ErrEmptySlug = errors.New("slug cannot be empty")
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify lowercases input, folds accents ("Café" -> "cafe") and joins the
// remaining alphanumeric runs with hyphens. fallback is used when nothing
// survives.
func Slugify(input, fallback string) (string, error) {
	slug := slugify(input)
	if slug == "" {
		slug = slugify(fallback)
	}
	if slug == "" {
		return "", ErrEmptySlug
	}
	return slug, nil
}

// WithSuffix appends -n to slug, trimming slug so the result stays within
// MaxSlugLength.
func WithSuffix(slug string, n int) string {
	suffix := fmt.Sprintf("-%d", n)
	if keep := MaxSlugLength - len(suffix); len(slug) > keep {
		slug = strings.TrimRight(slug[:keep], "-")
	}
	return slug + suffix
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.TrimSpace(s)) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	slug := strings.Trim(nonSlugChars.ReplaceAllString(b.String(), "-"), "-")
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	return slug
}
