// Package identity canonicalizes raw identity strings (emails) into
// comparison keys. Every identity comparison in the system goes through
// Normalize; raw stored strings are never compared directly.
package identity

import (
	"net/url"
	"strings"
)

// Key is the canonical form of a user's email: trimmed, percent-decoded
// and lowercased.
type Key = string

// Normalize converts a raw identity string into its canonical Key.
// It is total (garbage in, empty-ish key out, never an error) and
// idempotent for already-normalized input. Frontends occasionally
// submit emails percent-encoded (a%40example.com), so a decode pass is
// attempted; undecodable input is kept as-is.
func Normalize(raw string) Key {
	s := strings.TrimSpace(raw)
	if decoded, err := url.PathUnescape(s); err == nil {
		s = decoded
	}
	return strings.ToLower(s)
}
