package checkout

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abcXYZ019", "abcXYZ019"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"a b", "a%20b"},
		{"#42", "%2342"},
		{"a\nb", "a%0Ab"},
		{"&=?/+:", "%26%3D%3F%2F%2B%3A"},
		{"Córdoba", "C%C3%B3rdoba"},
		{"$ 1.234,56", "%24%201.234%2C56"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeComponent(tt.in))
		})
	}
}

func TestEscapeComponentRoundTripsThroughQuery(t *testing.T) {
	msg := "¡Hola!\nPedido: #42\nTotal: $ 2.300,00"
	u, err := url.Parse(WhatsAppURL("+54 9 358", msg))
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/+549358", u.Path)
	assert.Equal(t, msg, u.Query().Get("text"))
}

func TestWhatsAppURLNeedsPhone(t *testing.T) {
	assert.Empty(t, WhatsAppURL("", "hi"))
	assert.Empty(t, WhatsAppURL("n/a", "hi"))
}
