package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the top-level application configuration
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Logging      LoggingConfig      `toml:"logging"`
	OpenAI       OpenAIConfig       `toml:"openai"`
	VAD          VADConfig          `toml:"vad"`
	Call         CallConfig         `toml:"call"`
	Availability AvailabilityConfig `toml:"availability"`
	Storage      StorageConfig      `toml:"storage"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host               string   `toml:"host"`
	Port               int      `toml:"port"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// OpenAIConfig represents the realtime voice session configuration
type OpenAIConfig struct {
	APIKey            string  `toml:"api_key"`
	RealtimeURL       string  `toml:"realtime_url"`
	Model             string  `toml:"model"`
	Voice             string  `toml:"voice"`
	Temperature       float64 `toml:"temperature"`
	InputAudioFormat  string  `toml:"input_audio_format"`
	OutputAudioFormat string  `toml:"output_audio_format"`
	// Instructions overrides the built-in system prompt when non-empty.
	Instructions string `toml:"instructions"`
	// Greeting is the instruction used to trigger the opening utterance.
	Greeting string `toml:"greeting"`
}

// VADConfig represents the local voice-activity detector tuning.
// These are tuning knobs, not contracts: adjust per line quality.
type VADConfig struct {
	// VoiceThreshold is the RMS energy above which a frame counts as voice.
	VoiceThreshold int `toml:"voice_threshold"`
	// MinVoiceFrames is how many consecutive voice frames are required
	// before the caller is considered to be speaking.
	MinVoiceFrames int `toml:"min_voice_frames"`
	// SilenceDurationMs is the trailing silence that ends an utterance.
	SilenceDurationMs int `toml:"silence_duration_ms"`
}

// CallConfig represents per-call behavior
type CallConfig struct {
	// EndGraceMs is how long to wait after the farewell audio finishes
	// before closing both legs, so the last chunk can play out remotely.
	EndGraceMs int `toml:"end_grace_ms"`
	// TimezoneOffsetHours is the fixed UTC offset used for date arithmetic.
	TimezoneOffsetHours int `toml:"timezone_offset_hours"`
}

// AvailabilityConfig represents the fixed-rule scheduling table.
// Weekdays use Monday=0 indexing.
type AvailabilityConfig struct {
	ClosedWeekdays []int `toml:"closed_weekdays"`
}

// StorageConfig represents persistence configuration
type StorageConfig struct {
	SQLitePath string `toml:"sqlite_path"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8080,
			CORSAllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		OpenAI: OpenAIConfig{
			RealtimeURL:       "wss://api.openai.com/v1/realtime",
			Model:             "gpt-realtime",
			Voice:             "shimmer",
			Temperature:       0.8,
			InputAudioFormat:  "g711_ulaw",
			OutputAudioFormat: "g711_ulaw",
		},
		VAD: VADConfig{
			VoiceThreshold:    600,
			MinVoiceFrames:    2,
			SilenceDurationMs: 600,
		},
		Call: CallConfig{
			EndGraceMs:          1000,
			TimezoneOffsetHours: 9,
		},
		Availability: AvailabilityConfig{
			ClosedWeekdays: []int{5, 6}, // Saturday, Sunday
		},
		Storage: StorageConfig{
			SQLitePath: "bridge.db",
		},
	}
}

// Load loads configuration from the given TOML file, applying defaults
// for anything the file does not set. The OpenAI API key may also come
// from the OPENAI_API_KEY environment variable, which takes precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.APIKey = key
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.VAD.VoiceThreshold <= 0 {
		return fmt.Errorf("vad voice_threshold must be positive, got %d", c.VAD.VoiceThreshold)
	}
	if c.VAD.MinVoiceFrames <= 0 {
		return fmt.Errorf("vad min_voice_frames must be positive, got %d", c.VAD.MinVoiceFrames)
	}
	if c.VAD.SilenceDurationMs <= 0 {
		return fmt.Errorf("vad silence_duration_ms must be positive, got %d", c.VAD.SilenceDurationMs)
	}
	for _, wd := range c.Availability.ClosedWeekdays {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("closed_weekdays entries must be 0-6 (Monday=0), got %d", wd)
		}
	}
	return nil
}

// SilenceDuration returns the end-of-utterance window as a duration
func (c *VADConfig) SilenceDuration() time.Duration {
	return time.Duration(c.SilenceDurationMs) * time.Millisecond
}

// EndGrace returns the post-farewell grace period as a duration
func (c *CallConfig) EndGrace() time.Duration {
	return time.Duration(c.EndGraceMs) * time.Millisecond
}

// Location returns the fixed-offset time zone used for date arithmetic
func (c *CallConfig) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC+%d", c.TimezoneOffsetHours), c.TimezoneOffsetHours*3600)
}
