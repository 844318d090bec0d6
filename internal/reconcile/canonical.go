package reconcile

import (
	"regexp"
	"strings"
)

// capacitySuffix matches a trailing capacity annotation like " @ 24".
var capacitySuffix = regexp.MustCompile(`\s*@\s*\d+\s*$`)

const nameSeparator = " - "

// CanonicalClassName normalizes a raw class name: strips a trailing capacity
// annotation, then collapses the known export duplication artifacts
// "NAME - NAME" and "A - B - A - B" to a single copy. Any other duplication
// shape passes through untouched (trimmed). Idempotent.
func CanonicalClassName(raw string) string {
	name := strings.TrimSpace(capacitySuffix.ReplaceAllString(raw, ""))

	parts := strings.Split(name, nameSeparator)
	switch len(parts) {
	case 2:
		if strings.EqualFold(parts[0], parts[1]) {
			return parts[0]
		}
	case 4:
		left := parts[0] + nameSeparator + parts[1]
		right := parts[2] + nameSeparator + parts[3]
		if strings.EqualFold(left, right) {
			return left
		}
	}
	return name
}
