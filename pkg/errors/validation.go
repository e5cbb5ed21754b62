package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// instanceNameRegex matches designators usable in anchor references (U2, R7, t1).
var instanceNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateInstanceName validates a component designator.
//
// Designators are referenced from expressions as Name.Anchor, so they must be
// plain identifiers:
//   - No empty names
//   - Letters, digits and underscores, not starting with a digit
//   - Maximum length of 64 characters
func ValidateInstanceName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "component id cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "component id too long (max 64 characters)")
	}
	if !instanceNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid component id %q: use letters, digits and underscores", name)
	}
	return nil
}

// ValidateAnchorName validates an anchor name. Anchor names are free-form
// (IC pins are often called "NMOS#" or "Freq.Sync.") but must be printable.
func ValidateAnchorName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "anchor name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "anchor name too long (max 64 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "anchor name %q contains whitespace or control characters", name)
		}
	}
	return nil
}

// ValidateOutputPath validates an artifact output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No backslashes (Windows-style paths)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
