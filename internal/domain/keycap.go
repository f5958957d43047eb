package domain

import (
	"strconv"
	"strings"
)

// keycapSuffix is VARIATION SELECTOR-16 followed by COMBINING ENCLOSING KEYCAP
const keycapSuffix = "\uFE0F\u20E3"

// ToEmoji returns the keycap glyph for a poll day, e.g. 3 -> "3️⃣".
func ToEmoji(d Day) string {
	return strconv.Itoa(int(d)) + keycapSuffix
}

// FromEmoji parses a keycap glyph back to its poll day. Any glyph that is not
// one of the six poll keycaps reports false.
func FromEmoji(emoji string) (Day, bool) {
	digits, ok := strings.CutSuffix(emoji, keycapSuffix)
	if !ok || len(digits) != 1 {
		return 0, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}

	d := Day(n)
	if !d.Valid() {
		return 0, false
	}
	return d, true
}
