package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBluesky()
	c.normalizeAudio()
	if err := c.normalizeArchive(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeBluesky() {
	if c.Bluesky.Handle == "" {
		if value, ok := os.LookupEnv("BLUESKY_HANDLE"); ok {
			c.Bluesky.Handle = value
		}
	}
	if c.Bluesky.Password == "" {
		if value, ok := os.LookupEnv("BLUESKY_PASSWORD"); ok {
			c.Bluesky.Password = value
		}
	}
	c.Bluesky.ServiceURL = strings.TrimRight(strings.TrimSpace(c.Bluesky.ServiceURL), "/")
	if c.Bluesky.ServiceURL == "" {
		c.Bluesky.ServiceURL = defaultServiceURL
	}
	c.Bluesky.VideoServiceURL = strings.TrimRight(strings.TrimSpace(c.Bluesky.VideoServiceURL), "/")
	if c.Bluesky.VideoServiceURL == "" {
		c.Bluesky.VideoServiceURL = defaultVideoServiceURL
	}
}

func (c *Config) normalizeAudio() {
	if strings.TrimSpace(c.Audio.EspeakBinary) == "" {
		c.Audio.EspeakBinary = defaultEspeakBinary
	}
	if strings.TrimSpace(c.Audio.SoxBinary) == "" {
		c.Audio.SoxBinary = defaultSoxBinary
	}
	if strings.TrimSpace(c.Audio.FFmpegBinary) == "" {
		c.Audio.FFmpegBinary = defaultFFmpegBinary
	}
	if strings.TrimSpace(c.Audio.FFprobeBinary) == "" {
		c.Audio.FFprobeBinary = defaultFFprobeBinary
	}
	if c.Audio.SpeechRate <= 0 {
		c.Audio.SpeechRate = defaultSpeechRate
	}
	if c.Audio.ToneHz <= 0 {
		c.Audio.ToneHz = defaultToneHz
	}
	if c.Audio.ToneUnitMS <= 0 {
		c.Audio.ToneUnitMS = defaultToneUnitMS
	}
	if c.Audio.NoiseGain <= 0 {
		c.Audio.NoiseGain = defaultNoiseGain
	}
	if c.Upload.PollIntervalSeconds <= 0 {
		c.Upload.PollIntervalSeconds = defaultPollIntervalSeconds
	}
	if c.Upload.PollMaxAttempts <= 0 {
		c.Upload.PollMaxAttempts = defaultPollMaxAttempts
	}
	if c.Video.Width <= 0 {
		c.Video.Width = defaultVideoWidth
	}
	if c.Video.Height <= 0 {
		c.Video.Height = defaultVideoHeight
	}
}

func (c *Config) normalizeArchive() error {
	if strings.TrimSpace(c.Archive.Path) == "" {
		c.Archive.Path = defaultArchivePath
	}
	var err error
	if c.Archive.Path, err = expandPath(c.Archive.Path); err != nil {
		return fmt.Errorf("archive.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyRequestTimeout
	}
}
