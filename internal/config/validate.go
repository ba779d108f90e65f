package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBluesky(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBluesky() error {
	if c.Bluesky.PostChance < 0 || c.Bluesky.PostChance > 1 {
		return fmt.Errorf("bluesky.post_chance must be between 0 and 1, got %v", c.Bluesky.PostChance)
	}
	if !strings.HasPrefix(c.Bluesky.ServiceURL, "http") {
		return fmt.Errorf("bluesky.service_url must be an HTTP(S) URL, got %q", c.Bluesky.ServiceURL)
	}
	if !strings.HasPrefix(c.Bluesky.VideoServiceURL, "http") {
		return fmt.Errorf("bluesky.video_service_url must be an HTTP(S) URL, got %q", c.Bluesky.VideoServiceURL)
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.NoiseGain > 1 {
		return fmt.Errorf("audio.noise_gain must not exceed 1.0, got %v", c.Audio.NoiseGain)
	}
	if c.Audio.ToneUnitMS > 1000 {
		return fmt.Errorf("audio.tone_unit_ms must not exceed 1000, got %d", c.Audio.ToneUnitMS)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

// RequireCredentials fails when Bluesky credentials are missing. Commands
// that never touch the network skip this check.
func (c *Config) RequireCredentials() error {
	if strings.TrimSpace(c.Bluesky.Handle) == "" || strings.TrimSpace(c.Bluesky.Password) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/shortwave/config.toml"
		}
		return fmt.Errorf("bluesky credentials are required. Set BLUESKY_HANDLE and BLUESKY_PASSWORD env vars or edit %s (create with 'shortwave config init')", defaultPath)
	}
	return nil
}
