package checkout

import (
	"strings"
)

// WhatsAppURL is the wa.me link that opens a chat with phone prefilled with
// text. Anything but digits and "+" is dropped from phone; an empty phone
// yields no link.
func WhatsAppURL(phone, text string) string {
	phone = cleanPhone(phone)
	if phone == "" {
		return ""
	}
	return "https://wa.me/" + phone + "?text=" + escapeComponent(text)
}

func cleanPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

// escapeComponent percent-encodes s the way browsers encode a URI component:
// only letters, digits and -_.!~*'() are kept as is.
func escapeComponent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keepUnescaped(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func keepUnescaped(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
