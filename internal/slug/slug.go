package slug

import (
	"errors"
	"fmt"

	gosimple "github.com/gosimple/slug"
)

// maxAttempts bounds the suffix search: base, base-1, ... base-100.
const maxAttempts = 100

// ErrExhausted is returned when every candidate up to base-100 is taken.
// Reusing the last candidate anyway would silently break routing, so slug
// generation fails instead.
var ErrExhausted = errors.New("no free slug after 100 suffix attempts")

// ExistsFunc probes whether a candidate slug is already taken in the target
// scope (global for stories/categories, per-story for chapters).
type ExistsFunc func(candidate string) (bool, error)

// Make lowercases, strips Vietnamese diacritics (ầ/ấ/ậ... -> a, đ -> d) and
// collapses whitespace to hyphens, yielding [a-z0-9-] only.
func Make(title string) string {
	s := gosimple.Make(title)
	if s == "" {
		s = "untitled"
	}
	return s
}

// MakeUnique derives a slug from title and disambiguates collisions with an
// incrementing numeric suffix.
func MakeUnique(title string, exists ExistsFunc) (string, error) {
	base := Make(title)
	for n := 0; n <= maxAttempts; n++ {
		candidate := base
		if n > 0 {
			candidate = fmt.Sprintf("%s-%d", base, n)
		}
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrExhausted
}
