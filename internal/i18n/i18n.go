package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embedded embed.FS

// I18n holds the UI label catalogs, one flat key space per language.
type I18n struct {
	translations map[string]map[string]string
	defaultLang  string
	debug        bool
	mu           sync.RWMutex
}

// New creates an empty I18n with the given fallback language.
func New(defaultLang string) (*I18n, error) {
	if !isValidLang(defaultLang) {
		return nil, fmt.Errorf("invalid default language: %s (must be like 'en' or 'en-US')", defaultLang)
	}
	return &I18n{
		translations: make(map[string]map[string]string),
		defaultLang:  defaultLang,
	}, nil
}

// NewEmbedded creates an I18n loaded with the catalogs built into the binary.
func NewEmbedded(defaultLang string) (*I18n, error) {
	i, err := New(defaultLang)
	if err != nil {
		return nil, err
	}
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, err
	}
	if err := i.LoadFS(sub); err != nil {
		return nil, err
	}
	return i, nil
}

var langPattern = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)

func isValidLang(lang string) bool {
	return langPattern.MatchString(lang)
}

func (i *I18n) EnableDebug() {
	i.debug = true
}

// Languages lists the loaded catalogs, sorted.
func (i *I18n) Languages() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]string, 0, len(i.translations))
	for lang := range i.translations {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Has reports whether lang has a catalog.
func (i *I18n) Has(lang string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.translations[lang]
	return ok
}

// LoadLocales loads YAML catalogs from a directory on disk.
func (i *I18n) LoadLocales(dir string) error {
	return i.LoadFS(os.DirFS(dir))
}

// LoadFS loads every <lang>.yaml at the root of fsys, replacing what was loaded.
func (i *I18n) LoadFS(fsys fs.FS) error {
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		slog.Error("[LANG] Failed to list catalogs", "error", err)
		return fmt.Errorf("failed to list catalogs: %w", err)
	}
	if len(files) == 0 {
		slog.Warn("[LANG] No catalogs found")
		return fmt.Errorf("no catalogs found")
	}

	loaded := make(map[string]map[string]string, len(files))
	for _, file := range files {
		lang := strings.TrimSuffix(path.Base(file), ".yaml")
		if !isValidLang(lang) {
			slog.Warn("[LANG] Invalid language code, skipping", "lang", lang, "file", file)
			continue
		}

		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("failed to read catalog %s: %w", file, err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			slog.Error("[LANG] Invalid YAML", "file", file, "error", err)
			return fmt.Errorf("invalid YAML in %s: %w", file, err)
		}
		entries := make(map[string]string)
		flatten("", tree, entries)
		if len(entries) == 0 {
			slog.Warn("[LANG] Catalog is empty", "file", file)
			continue
		}
		loaded[lang] = entries
		slog.Info("[LANG] Catalog loaded", "lang", lang, "entries", len(entries))
	}

	if _, ok := loaded[i.defaultLang]; !ok {
		slog.Error("[LANG] Default language has no catalog", "lang", i.defaultLang)
		return fmt.Errorf("default language %s has no catalog", i.defaultLang)
	}

	i.mu.Lock()
	i.translations = loaded
	i.mu.Unlock()
	return nil
}

// flatten turns nested YAML maps into dotted keys: tab: {tips: x} -> tab.tips.
func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// T translates key into lang. Missing keys fall back to the default
// language, then to the key itself. args are applied with fmt.Sprintf.
func (i *I18n) T(key, lang string, args ...any) string {
	i.mu.RLock()
	val := i.getTranslation(key, lang)
	i.mu.RUnlock()

	if val == "" {
		slog.Warn("[LANG] Missing translation", "key", key, "lang", lang)
		val = key
	} else if i.debug {
		slog.Debug("[LANG] Translated", "key", key, "lang", lang)
	}

	if len(args) > 0 {
		return fmt.Sprintf(val, args...)
	}
	return val
}

func (i *I18n) getTranslation(key, lang string) string {
	if v, ok := i.translations[lang][key]; ok {
		return v
	}
	if base, _, found := strings.Cut(lang, "-"); found {
		if v, ok := i.translations[base][key]; ok {
			return v
		}
	}
	if v, ok := i.translations[i.defaultLang][key]; ok {
		return v
	}
	return ""
}
