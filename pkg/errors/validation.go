package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateSiteName validates a site name for safety and correctness.
// Site names end up in cache keys, artifact filenames, and plan records,
// so the rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateSiteName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSite, "site name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidSite, "site name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSite, "site name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidSite, "site name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// planIDRegex matches the UUID form the store assigns to saved plans.
var planIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidatePlanID validates a persisted-plan identifier. IDs arrive from
// URL paths, so anything that is not a lowercase UUID is rejected before
// it reaches the store.
func ValidatePlanID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidPlanID, "plan id cannot be empty")
	}

	if !planIDRegex.MatchString(id) {
		return New(ErrCodeInvalidPlanID, "invalid plan id: %q", id)
	}

	return nil
}
