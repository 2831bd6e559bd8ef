package localize

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the display languages the menu guide supports.
type Language string

const (
	Korean   Language = "ko"
	English  Language = "en"
	Japanese Language = "ja"
	Chinese  Language = "zh" // simplified
)

// Default is the UI language used when no valid preference is stored.
// It is English even though Korean is the root language of the data.
const Default = English

// Root is the language every record is authored in and the last stop of
// every fallback chain.
const Root = Korean

// ErrUnsupportedLanguage is returned by Parse for codes outside the supported set.
var ErrUnsupportedLanguage = errors.New("unsupported language")

var supported = []Language{English, Japanese, Chinese, Korean}

// suffix-class keys per language; English uses the bare field name.
var suffixes = map[Language]string{
	English:  "",
	Japanese: "_ja",
	Chinese:  "_zh_cn",
	Korean:   "_ko",
}

var tags = map[Language]language.Tag{
	English:  language.English,
	Japanese: language.Japanese,
	Chinese:  language.SimplifiedChinese,
	Korean:   language.Korean,
}

var matcher = language.NewMatcher([]language.Tag{
	language.English, // first tag is the matcher's default
	language.Japanese,
	language.SimplifiedChinese,
	language.Korean,
})

// Supported returns the supported languages in menu display order.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Valid reports whether l is in the supported set.
func (l Language) Valid() bool {
	_, ok := suffixes[l]
	return ok
}

// Suffix returns the key suffix used by suffix-class fields for l.
func (l Language) Suffix() string {
	return suffixes[l]
}

// Tag returns the BCP 47 tag for l, or language.Und for unsupported values.
func (l Language) Tag() language.Tag {
	if t, ok := tags[l]; ok {
		return t
	}
	return language.Und
}

func (l Language) String() string {
	return string(l)
}

// Parse converts a user supplied code into a supported Language. Exact codes
// ("ja") and region/script variants ("ja-JP", "zh-Hans-CN") are accepted.
func Parse(code string) (Language, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "", ErrUnsupportedLanguage
	}
	if l := Language(code); l.Valid() {
		return l, nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", ErrUnsupportedLanguage
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", ErrUnsupportedLanguage
	}
	if l := Language(base.String()); l.Valid() {
		return l, nil
	}
	return "", ErrUnsupportedLanguage
}

// Match picks the best supported language for an Accept-Language header.
// The bool is false when nothing in the header matched.
func Match(acceptLanguage string) (Language, bool) {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return Default, false
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return Default, false
	}
	return supported[idx], true
}

// Chain returns the fallback chain for l: l itself, then English, then
// Korean, without duplicates. Unsupported values start at English.
func Chain(l Language) []Language {
	chain := make([]Language, 0, 3)
	if l.Valid() {
		chain = append(chain, l)
	}
	for _, next := range []Language{English, Root} {
		if !containsLanguage(chain, next) {
			chain = append(chain, next)
		}
	}
	return chain
}

func containsLanguage(list []Language, l Language) bool {
	for _, v := range list {
		if v == l {
			return true
		}
	}
	return false
}
