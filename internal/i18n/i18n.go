package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

var localeFiles = []string{
	"locales/active.es.json",
	"locales/active.en.json",
}

// Translator renders customer-facing messages.
type Translator interface {
	T(messageID string, data map[string]any) string
}

type Bundle struct {
	bundle    *goi18n.Bundle
	localizer *goi18n.Localizer
}

// New loads the embedded locales and localizes for lang, falling back to
// Spanish for unknown languages or missing messages.
func New(lang string) (*Bundle, error) {
	bundle := goi18n.NewBundle(language.Spanish)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, f := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(locales, f); err != nil {
			return nil, fmt.Errorf("load locale %s: %w", f, err)
		}
	}

	return &Bundle{
		bundle:    bundle,
		localizer: goi18n.NewLocalizer(bundle, lang, language.Spanish.String()),
	}, nil
}

// MustNew is New for tests and composition roots that cannot continue
// without messages.
func MustNew(lang string) *Bundle {
	b, err := New(lang)
	if err != nil {
		panic(err)
	}
	return b
}

// T returns the message or, when it cannot be rendered, its id.
func (b *Bundle) T(messageID string, data map[string]any) string {
	msg, err := b.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}
