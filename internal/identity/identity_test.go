package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Key
	}{
		{"empty", "", ""},
		{"already normalized", "bob@mail.com", "bob@mail.com"},
		{"mixed case", "Bob@Mail.com", "bob@mail.com"},
		{"surrounding whitespace", "  bob@mail.com \t", "bob@mail.com"},
		{"percent encoded at-sign", "bob%40mail.com", "bob@mail.com"},
		{"percent encoded uppercase", "Bob%40Mail.COM", "bob@mail.com"},
		{"whitespace plus encoding plus case", " Bob%40Mail.com ", "bob@mail.com"},
		{"plus sign survives decoding", "bob+tag@mail.com", "bob+tag@mail.com"},
		{"undecodable input kept as-is", "50%@mail.com", "50%@mail.com"},
		{"garbage", "%%zz", "%%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"bob@mail.com",
		"Bob@Mail.com",
		"  Bob@Mail.com  ",
		"bob%40mail.com",
		" BOB%40MAIL.COM ",
		"50%@mail.com",
		"%%zz",
	}

	for _, raw := range inputs {
		once := Normalize(raw)
		assert.Equal(t, once, Normalize(once), "Normalize must be a fixed point for %q", raw)
	}
}

func TestNormalizeEquatesRepresentations(t *testing.T) {
	// the same identity submitted three different ways must compare equal
	assert.Equal(t, Normalize("A@X.com "), Normalize("a%40x.com"))
	assert.Equal(t, Normalize("a@x.com"), Normalize(" A%40X.COM"))
}
