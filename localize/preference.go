package localize

import (
	"log/slog"
	"sync"
)

// StorageKey is the single key under which the language preference is persisted.
const StorageKey = "menu_guide_language"

// Store is a durable key/value store for the preference (a cookie jar, a
// database row, or memory in tests).
type Store interface {
	Load(key string) (string, error)
	Save(key, value string) error
}

// Preference is the user's explicitly chosen display language.
type Preference struct {
	store Store
}

// NewPreference returns a Preference persisted in store.
func NewPreference(store Store) *Preference {
	return &Preference{store: store}
}

// Language returns the persisted language, or English when nothing valid is stored.
func (p *Preference) Language() Language {
	if p == nil || p.store == nil {
		return Default
	}
	v, err := p.store.Load(StorageKey)
	if err != nil {
		slog.Warn("[LANG] Failed to load language preference", "err", err)
		return Default
	}
	l := Language(v)
	if !l.Valid() {
		if v != "" {
			slog.Warn("[LANG] Ignoring invalid stored language", "lang", v)
		}
		return Default
	}
	return l
}

// SetLanguage persists lang. Unsupported values are ignored with a warning
// and leave the current preference untouched. It reports whether the
// preference was updated.
func (p *Preference) SetLanguage(lang Language) bool {
	if !lang.Valid() {
		slog.Warn("[LANG] Unsupported language", "lang", string(lang))
		return false
	}
	if p == nil || p.store == nil {
		return false
	}
	if err := p.store.Save(StorageKey, string(lang)); err != nil {
		slog.Error("[LANG] Failed to save language preference", "lang", lang, "err", err)
		return false
	}
	slog.Info("[LANG] Language changed", "lang", lang)
	return true
}

// MemoryStore is an in-process Store safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Load(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MemoryStore) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}
