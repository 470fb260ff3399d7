// Package gravatar derives avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const baseURL = "https://www.gravatar.com/avatar/"

// URL returns a 200px, pg-rated avatar with the "mystery man" fallback.
func URL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("%s%s?s=200&r=pg&d=mm", baseURL, hex.EncodeToString(sum[:]))
}
