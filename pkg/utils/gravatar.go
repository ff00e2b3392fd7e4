package utils

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"strings"
)

// GravatarURL builds the avatar URL for an email address.
// Size 100, rating "x", identicon-style "mm" default image.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))

	query := url.Values{}
	query.Set("s", "100")
	query.Set("r", "x")
	query.Set("d", "mm")

	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?%s", hash, query.Encode())
}
