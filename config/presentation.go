package config

// Fallback values applied when a stored config carries zero or invalid fields.
const (
	DefaultAutoplayIntervalMs = 5000
	DefaultVoiceCooldownMs    = 1500
	DefaultImageSourceURL     = "https://source.unsplash.com/1600x900/?%s"
	DefaultLogMaxSizeMB       = 20
)

// DefaultAutoplayConfig returns the autoplay settings for new installations.
func DefaultAutoplayConfig() AutoplayConfig {
	return AutoplayConfig{
		IntervalMs: DefaultAutoplayIntervalMs,
	}
}

// Validate clamps invalid values to defaults.
// Sub-second intervals are treated as invalid.
func (c *AutoplayConfig) Validate() {
	if c.IntervalMs < 1000 {
		c.IntervalMs = DefaultAutoplayIntervalMs
	}
}

// DefaultVoiceConfig returns the voice navigation settings for new installations.
// Voice control stays on by default; it is skipped at runtime when the host has
// no recognition capability.
func DefaultVoiceConfig() VoiceConfig {
	return VoiceConfig{
		Enabled:    true,
		CooldownMs: DefaultVoiceCooldownMs,
	}
}

// Validate clamps invalid values to defaults.
func (c *VoiceConfig) Validate() {
	if c.CooldownMs <= 0 {
		c.CooldownMs = DefaultVoiceCooldownMs
	}
}

// DefaultImageSourceConfig returns the slide image sourcing settings for new installations.
func DefaultImageSourceConfig() ImageSourceConfig {
	return ImageSourceConfig{
		BaseURL: DefaultImageSourceURL,
		Enabled: true,
	}
}

// Validate clamps invalid values to defaults.
func (c *ImageSourceConfig) Validate() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultImageSourceURL
	}
}
