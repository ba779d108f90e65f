package config

const (
	defaultWorkDir             = "~/.local/share/shortwave/work"
	defaultLogDir              = "~/.local/share/shortwave/logs"
	defaultArchivePath         = "~/.local/share/shortwave/archive.db"
	defaultServiceURL          = "https://bsky.social"
	defaultVideoServiceURL     = "https://video.bsky.app"
	defaultPostChance          = 0.03
	defaultEspeakBinary        = "espeak"
	defaultSoxBinary           = "sox"
	defaultFFmpegBinary        = "ffmpeg"
	defaultFFprobeBinary       = "ffprobe"
	defaultSpeechRate          = 100
	defaultToneHz              = 500
	defaultToneUnitMS          = 80
	defaultNoiseGain           = 0.05
	defaultVideoWidth          = 1280
	defaultVideoHeight         = 720
	defaultPollIntervalSeconds = 1
	defaultPollMaxAttempts     = 300
	defaultNtfyRequestTimeout  = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Bluesky: Bluesky{
			ServiceURL:      defaultServiceURL,
			VideoServiceURL: defaultVideoServiceURL,
			PostChance:      defaultPostChance,
		},
		Audio: Audio{
			EspeakBinary:  defaultEspeakBinary,
			SoxBinary:     defaultSoxBinary,
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			SpeechRate:    defaultSpeechRate,
			ToneHz:        defaultToneHz,
			ToneUnitMS:    defaultToneUnitMS,
			NoiseGain:     defaultNoiseGain,
		},
		Video: Video{
			Width:  defaultVideoWidth,
			Height: defaultVideoHeight,
		},
		Upload: Upload{
			PollIntervalSeconds: defaultPollIntervalSeconds,
			PollMaxAttempts:     defaultPollMaxAttempts,
		},
		Archive: Archive{
			Enabled: true,
			Path:    defaultArchivePath,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
