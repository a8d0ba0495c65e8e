package location

import (
	"strings"

	"github.com/gosimple/slug"
)

// Slugify normalizes a place name for uniqueness checks.
func Slugify(name string) string {
	return slug.Make(strings.TrimSpace(name))
}
