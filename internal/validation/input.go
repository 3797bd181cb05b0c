package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const maxInputLength = 256

// Usernames and slugs are URL path segments on TabNews; both stick to this
// alphabet.
var pathSegmentRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// emailRe is a permissive shape check; the server is the authority.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks the login email before it is sent to the API.
func ValidateEmail(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if len(input) > maxInputLength {
		return fmt.Errorf("email too long (max %d characters)", maxInputLength)
	}
	if !emailRe.MatchString(input) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidateUsername checks that a username is safe to place in a URL path.
func ValidateUsername(input string) error {
	return validateSegment("username", input)
}

// ValidateSlug checks that a content slug is safe to place in a URL path.
func ValidateSlug(input string) error {
	return validateSegment("slug", input)
}

func validateSegment(name, input string) error {
	if input == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	if len(input) > maxInputLength {
		return fmt.Errorf("%s too long (max %d characters)", name, maxInputLength)
	}
	if !pathSegmentRe.MatchString(input) {
		return fmt.Errorf("%s contains invalid characters", name)
	}
	return nil
}
