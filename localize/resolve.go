package localize

// Record is a read-only snapshot of a backend JSON object (menu, modifier,
// ingredient). Values keep the shapes produced by encoding/json.
type Record map[string]any

// Fields stored as nested objects keyed by language code. Every other
// field is stored as sibling keys with a per-language suffix.
var structuredFields = map[string]struct{}{
	"explanation_short": {},
	"explanation_long":  {},
	"cultural_context":  {},
}

// IsStructured reports whether field is stored as a nested per-language object.
func IsStructured(field string) bool {
	_, ok := structuredFields[field]
	return ok
}

// ResolveField returns the display string for field on rec in lang.
//
// Structured fields try lang, English and Korean inside the nested object; a
// legacy plain-string value is returned as is. Suffix fields try the
// lang-suffixed key, then field_en, field_ko and finally the bare field.
// Missing values resolve to "".
func ResolveField(rec Record, field string, lang Language) string {
	if rec == nil || field == "" {
		return ""
	}
	if IsStructured(field) {
		return resolveStructured(rec[field], lang)
	}
	keys := [...]string{
		field + lang.Suffix(),
		field + "_en",
		field + Root.Suffix(),
		field,
	}
	for _, key := range keys {
		if s := text(rec[key]); s != "" {
			return s
		}
	}
	return ""
}

func resolveStructured(v any, lang Language) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any, map[string]string, Record:
		return lookupChain(val, Chain(lang))
	default:
		return ""
	}
}

// ResolveValue resolves a free-form value that may be plain text or a nested
// per-language object, using the same chain as structured fields.
func ResolveValue(v any, lang Language) string {
	return resolveStructured(v, lang)
}

// ResolveIngredient returns the display name of an ingredient. A bare string
// passes through unchanged. For a per-language mapping the requested key is
// used only for Japanese and Chinese; everything else falls back to English
// and then Korean.
func ResolveIngredient(ingredient any, lang Language) string {
	switch val := ingredient.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any, map[string]string, Record:
		return lookupChain(val, translationChain(lang))
	default:
		return ""
	}
}

// ResolveModifierTranslation returns the translated text of a modifier,
// trying translation_<lang> for Japanese and Chinese, then translation_en,
// then the Korean source text.
func ResolveModifierTranslation(modifier Record, lang Language) string {
	if modifier == nil {
		return ""
	}
	for _, l := range translationChain(lang) {
		key := "translation_" + string(l)
		if l == Root {
			key = "text_ko"
		}
		if s := text(modifier[key]); s != "" {
			return s
		}
	}
	return ""
}

// translationChain is the chain used by ingredient and modifier lookups,
// where only the translated languages get a requested-language step.
func translationChain(lang Language) []Language {
	if lang == Japanese || lang == Chinese {
		return Chain(lang)
	}
	return Chain(English)
}

func lookupChain(m any, chain []Language) string {
	for _, l := range chain {
		if s := text(get(m, string(l))); s != "" {
			return s
		}
	}
	return ""
}

func get(m any, key string) any {
	switch val := m.(type) {
	case map[string]any:
		return val[key]
	case Record:
		return val[key]
	case map[string]string:
		if s, ok := val[key]; ok {
			return s
		}
	}
	return nil
}

// text returns v when it is a non-empty string.
func text(v any) string {
	s, _ := v.(string)
	return s
}
