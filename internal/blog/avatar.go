package blog

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// AvatarSize is the pixel size requested for user avatars.
const AvatarSize = 128

// GravatarURL derives the avatar image URL for an email address.
// The address is trimmed and lowercased before hashing, as the Gravatar
// protocol requires.
func GravatarURL(email string, size int) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://secure.gravatar.com/avatar/%s?s=%d", hex.EncodeToString(sum[:]), size)
}
