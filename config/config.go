package config

// VoiceConfig represents voice navigation configuration
type VoiceConfig struct {
	Enabled    bool `json:"enabled"`    // Whether voice navigation is enabled
	CooldownMs int  `json:"cooldownMs"` // Suppression window between recognized commands
}

// AutoplayConfig represents autoplay configuration
type AutoplayConfig struct {
	IntervalMs int `json:"intervalMs"` // Milliseconds between autoplay advances
}

// ImageSourceConfig represents slide image sourcing configuration
type ImageSourceConfig struct {
	BaseURL string `json:"baseUrl"` // URL template for keyword lookups, %s replaced with the keyword
	Enabled bool   `json:"enabled"` // Whether image sourcing is enabled
}

// Config structure
type Config struct {
	LLMProvider       string `json:"llmProvider"`
	APIKey            string `json:"apiKey"`
	BaseURL           string `json:"baseUrl"`
	ModelName         string `json:"modelName"`
	MaxTokens         int    `json:"maxTokens"`
	ClaudeHeaderStyle string `json:"claudeHeaderStyle,omitempty"` // Auth header style for Claude-Compatible endpoints: Anthropic or OpenAI
	DarkMode          bool   `json:"darkMode"`
	Language          string `json:"language"`

	ProjectTitle      string `json:"projectTitle"`      // Working title used for generated decks
	DefaultTheme      string `json:"defaultTheme"`      // Theme name from the built-in catalog
	DefaultTransition string `json:"defaultTransition"` // fade, slide, zoom or none
	ShowSpeakerNotes  bool   `json:"showSpeakerNotes"`  // Whether notes start visible
	AutosaveEnabled   bool   `json:"autosaveEnabled"`   // Whether the working deck autosaves to the library

	Autoplay    AutoplayConfig    `json:"autoplay"`
	Voice       VoiceConfig       `json:"voice"`
	ImageSource ImageSourceConfig `json:"imageSource"`

	DataDir      string `json:"dataDir"`      // Override for the deck library location
	DetailedLog  bool   `json:"detailedLog"`  // Log slide-level detail on every mutation
	LogMaxSizeMB int    `json:"logMaxSizeMB"` // Log rotation threshold
}

// validTransitions mirrors the deck-wide transition effect set.
var validTransitions = map[string]bool{
	"fade":  true,
	"slide": true,
	"zoom":  true,
	"none":  true,
}

// Validate normalizes invalid or missing fields to their defaults.
// It never fails; bad values are replaced, not rejected.
func (c *Config) Validate() {
	if c.LLMProvider == "" {
		c.LLMProvider = "OpenAI"
	}
	if c.ModelName == "" {
		c.ModelName = "gpt-4o"
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 8192
	}
	if c.Language == "" {
		c.Language = "English"
	}
	if c.DefaultTheme == "" {
		c.DefaultTheme = "midnight"
	}
	if !validTransitions[c.DefaultTransition] {
		c.DefaultTransition = "fade"
	}
	if c.LogMaxSizeMB <= 0 {
		c.LogMaxSizeMB = DefaultLogMaxSizeMB
	}
	c.Autoplay.Validate()
	c.Voice.Validate()
	c.ImageSource.Validate()
}
