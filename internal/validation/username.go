// Package validation contains input validation rules shared by the service
// and HTTP layers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9-]{1,40}$`)

// Reserved usernames collide with fixed routes; a profile stored under one
// of these would be unreachable at its public address.
var reservedUsernames = map[string]struct{}{
	"create":  {},
	"edit":    {},
	"logout":  {},
	"health":  {},
	"static":  {},
	"resolve": {},
}

// ValidateUsername validates username format and reserved names.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 1-40 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(username, "-") || strings.HasSuffix(username, "-") {
		return fmt.Errorf("username cannot start or end with a hyphen")
	}

	if _, exists := reservedUsernames[username]; exists {
		return fmt.Errorf("username is reserved")
	}

	return nil
}

var nonAlphanumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts free text into username form: lowercased, runs of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens stripped.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlphanumRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
