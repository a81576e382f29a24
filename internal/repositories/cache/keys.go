package cache

import "strings"

// Key prefixes
const (
	OTPKeyPrefix = "otp"
)

// GenerateKey joins an entity type and its identifying parts with ":".
func GenerateKey(entityType string, parts ...string) string {
	return strings.Join(append([]string{entityType}, parts...), ":")
}
