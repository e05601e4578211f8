// Package i18n holds every user-facing string and LLM prompt the app ships,
// keyed by a stable dotted id. Services never embed literal UI text; they ask
// T for the string in whatever language the user picked in Settings.
package i18n

import (
	"fmt"
	"sync"
)

// Language identifies one shipped translation table. The values double as the
// display names offered in Settings.
type Language string

const (
	English Language = "English"
	Chinese Language = "简体中文"
)

var tables = map[Language]map[string]string{
	English: englishTranslations,
	Chinese: chineseTranslations,
}

var (
	mu     sync.RWMutex
	active = English
)

// SetLanguage switches the active language for all subsequent lookups.
func SetLanguage(lang Language) {
	mu.Lock()
	active = lang
	mu.Unlock()
}

// GetLanguage returns the active language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return active
}

// T resolves a key in the active language. A key absent from the active table
// falls back to English, and an untranslated key comes back verbatim so a
// missing entry shows up in the UI instead of vanishing. Params, when given,
// are spliced in with Sprintf against the string's format verbs.
func T(key string, params ...interface{}) string {
	text, ok := tables[GetLanguage()][key]
	if !ok {
		if text, ok = tables[English][key]; !ok {
			return key
		}
	}
	if len(params) > 0 {
		return fmt.Sprintf(text, params...)
	}
	return text
}
