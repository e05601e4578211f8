package i18n

import (
	"github.com/hotabics/pitchtimerai-sub001/config"
)

// SyncLanguageFromConfig synchronizes language setting from application config
// This should be called when the application starts or when config changes
func SyncLanguageFromConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	SetLanguage(ParseLanguage(cfg.Language))
}

// ParseLanguage converts a config string to a Language, defaulting to English
func ParseLanguage(langStr string) Language {
	switch langStr {
	case "简体中文":
		return Chinese
	case "English":
		return English
	default:
		return English
	}
}
