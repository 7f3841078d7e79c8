package verr

import (
	"embed"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// Bundle returns an initialized internationalization bundle with the
// embedded locale catalogs (spec §7 DOMAIN STACK; grounded on the
// teacher's GetI18n in i18n.go, same bundle construction, Orderly's own
// error-code keys instead of JSON Schema keyword codes).
func Bundle() (*i18n.I18n, error) {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "zh-Hans"),
	)
	if err := bundle.LoadFS(localesFS, "locales/*.json"); err != nil {
		return nil, err
	}
	return bundle, nil
}

// Localize renders e through localizer, falling back to the
// code-appropriate key when the error has no offending property (the
// "_root" variants, e.g. a top-level type mismatch has no property name
// to report).
func (e *Error) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return e.Error()
	}
	key := e.Code.String()
	if e.Code == TypeMismatch && e.Property == "" {
		key = "type_mismatch_root"
	}
	return localizer.Get(key, i18n.Vars(e.vars()))
}
