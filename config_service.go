package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hotabics/pitchtimerai-sub001/config"
)

// ConfigProvider defines the config read interface
type ConfigProvider interface {
	GetConfig() (config.Config, error)
	GetEffectiveConfig() (config.Config, error)
}

// ConfigPersister defines the config persistence interface
type ConfigPersister interface {
	SaveConfig(cfg config.Config) error
}

// ConfigNotifier defines the config change notification interface
type ConfigNotifier interface {
	OnConfigChanged(callback func(config.Config))
}

// ConfigService owns all configuration management logic.
// Implements Service, ConfigProvider, ConfigPersister, ConfigNotifier.
type ConfigService struct {
	storageDir string
	logger     func(string)
	callbacks  []func(config.Config)
	mu         sync.RWMutex
}

// NewConfigService creates a new ConfigService instance
func NewConfigService(logger func(string)) *ConfigService {
	return &ConfigService{
		logger:    logger,
		callbacks: make([]func(config.Config), 0),
	}
}

// Name returns the service name
func (cs *ConfigService) Name() string {
	return "config"
}

// Initialize ensures the storage directory exists
func (cs *ConfigService) Initialize(ctx context.Context) error {
	dir, err := cs.GetStorageDir()
	if err != nil {
		return WrapError("config", "Initialize", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return WrapError("config", "Initialize", fmt.Errorf("failed to create storage dir: %w", err))
	}
	cs.log(fmt.Sprintf("ConfigService initialized, storage dir: %s", dir))
	return nil
}

// Shutdown closes the config service (no-op)
func (cs *ConfigService) Shutdown() error {
	return nil
}

// GetStorageDir returns the storage directory path (~/PitchDeck)
func (cs *ConfigService) GetStorageDir() (string, error) {
	cs.mu.RLock()
	sd := cs.storageDir
	cs.mu.RUnlock()

	if sd != "" {
		return sd, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", WrapError("config", "GetStorageDir", err)
	}
	return filepath.Join(home, "PitchDeck"), nil
}

// SetStorageDir sets a custom storage directory (mainly for tests)
func (cs *ConfigService) SetStorageDir(dir string) {
	cs.mu.Lock()
	cs.storageDir = dir
	cs.mu.Unlock()
}

// GetConfigPath returns the config file path
func (cs *ConfigService) GetConfigPath() (string, error) {
	dir, err := cs.GetStorageDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// defaultConfig returns the configuration used before any config file exists
func (cs *ConfigService) defaultConfig() config.Config {
	home, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(home, "PitchDeck")

	return config.Config{
		LLMProvider:       "OpenAI",
		ModelName:         "gpt-4o",
		MaxTokens:         8192,
		Language:          "English",
		ProjectTitle:      "",
		DefaultTheme:      DefaultThemeID,
		DefaultTransition: string(TransitionFade),
		ShowSpeakerNotes:  true,
		AutosaveEnabled:   true,
		Autoplay:          config.DefaultAutoplayConfig(),
		Voice:             config.DefaultVoiceConfig(),
		ImageSource:       config.DefaultImageSourceConfig(),
		DataDir:           defaultDataDir,
		LogMaxSizeMB:      config.DefaultLogMaxSizeMB,
	}
}

// GetConfig loads the config file from disk
func (cs *ConfigService) GetConfig() (config.Config, error) {
	path, err := cs.GetConfigPath()
	if err != nil {
		return config.Config{}, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cs.defaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, WrapError("config", "GetConfig", err)
	}

	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return config.Config{}, WrapError("config", "GetConfig", err)
	}

	// Apply defaults for fields absent from older config files
	if cfg.DataDir == "" {
		home, _ := os.UserHomeDir()
		cfg.DataDir = filepath.Join(home, "PitchDeck")
	}
	if cfg.Autoplay.IntervalMs == 0 {
		cfg.Autoplay = config.DefaultAutoplayConfig()
	}
	if cfg.Voice.CooldownMs == 0 {
		cfg.Voice.CooldownMs = config.DefaultVoiceCooldownMs
	}
	if cfg.ImageSource.BaseURL == "" {
		cfg.ImageSource = config.DefaultImageSourceConfig()
	}
	if cfg.LogMaxSizeMB == 0 {
		cfg.LogMaxSizeMB = config.DefaultLogMaxSizeMB
	}

	return cfg, nil
}

// GetEffectiveConfig returns the config (base implementation, no overlay logic)
func (cs *ConfigService) GetEffectiveConfig() (config.Config, error) {
	return cs.GetConfig()
}

// SaveConfig validates and saves the config to disk, then triggers all callbacks
func (cs *ConfigService) SaveConfig(cfg config.Config) error {
	// Validate DataDir exists if set
	if cfg.DataDir != "" {
		info, err := os.Stat(cfg.DataDir)
		if err != nil {
			if os.IsNotExist(err) {
				return WrapError("config", "SaveConfig", fmt.Errorf("data directory does not exist: %s", cfg.DataDir))
			}
			return WrapError("config", "SaveConfig", err)
		}
		if !info.IsDir() {
			return WrapError("config", "SaveConfig", fmt.Errorf("data path is not a directory: %s", cfg.DataDir))
		}
	}

	dir, err := cs.GetStorageDir()
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return WrapError("config", "SaveConfig", fmt.Errorf("failed to create storage dir: %w", err))
	}

	// Validate config before saving
	cfg.Validate()

	path := filepath.Join(dir, "config.json")
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return WrapError("config", "SaveConfig", fmt.Errorf("failed to marshal config: %w", err))
	}

	// Save with restricted permissions (0600: owner-only read/write since it contains API keys)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return WrapError("config", "SaveConfig", fmt.Errorf("failed to write config file: %w", err))
	}

	cs.log("Configuration saved to disk")

	// Trigger all registered callbacks
	cs.NotifyConfigChanged(cfg)

	return nil
}

// OnConfigChanged registers a config change callback
func (cs *ConfigService) OnConfigChanged(callback func(config.Config)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.callbacks = append(cs.callbacks, callback)
}

// NotifyConfigChanged fires all registered config change callbacks
func (cs *ConfigService) NotifyConfigChanged(cfg config.Config) {
	cs.mu.RLock()
	cbs := make([]func(config.Config), len(cs.callbacks))
	copy(cbs, cs.callbacks)
	cs.mu.RUnlock()

	for _, cb := range cbs {
		cb(cfg)
	}
}

// log writes through the injected logger
func (cs *ConfigService) log(msg string) {
	if cs.logger != nil {
		cs.logger(msg)
	}
}
