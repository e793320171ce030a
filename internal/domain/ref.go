package domain

import (
	"strings"
	"unicode"
)

const maxRefLen = 128

// ValidateRef checks that ref is a syntactically valid identifier: non-empty,
// at most 128 bytes, and free of whitespace and control characters. It does
// not check that the referent exists.
func ValidateRef(field, ref string) error {
	if ref == "" {
		return Validationf("%s is required", field)
	}
	if len(ref) > maxRefLen {
		return Validationf("%s must be at most %d characters", field, maxRefLen)
	}
	if strings.IndexFunc(ref, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0 {
		return Validationf("%s %q contains whitespace or control characters", field, ref)
	}
	return nil
}

// OptionalText maps blank text to nil.
func OptionalText(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// Deref returns *s, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
