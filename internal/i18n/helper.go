package i18n

import "github.com/pandamasta/menuguide/localize"

// Label returns the label for key in the visitor's language. An invalid
// language reads the default catalog.
func (i *I18n) Label(key string, lang localize.Language, args ...any) string {
	code := lang.String()
	if !lang.Valid() {
		code = i.defaultLang
	}
	return i.T(key, code, args...)
}
