package helpers

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL builds the deterministic avatar URL for an email address:
// 200px, PG-rated, "mystery man" fallback. The same email always maps to
// the same URL.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", sum)
}
