package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"shortwave/internal/config"
	"shortwave/internal/services"
)

var commandContext = exec.CommandContext

// Toolkit invokes ffmpeg and ffprobe for the broadcast pipeline.
type Toolkit struct {
	ffmpegBinary  string
	ffprobeBinary string
	noiseGain     float64
	width         int
	height        int
}

// New builds a Toolkit from audio and video configuration.
func New(cfg *config.Config) *Toolkit {
	return &Toolkit{
		ffmpegBinary:  cfg.Audio.FFmpegBinary,
		ffprobeBinary: cfg.Audio.FFprobeBinary,
		noiseGain:     cfg.Audio.NoiseGain,
		width:         cfg.Video.Width,
		height:        cfg.Video.Height,
	}
}

// AspectRatio returns the render resolution, which doubles as the embed
// aspect ratio of the published video.
func (t *Toolkit) AspectRatio() (width, height int) {
	return t.width, t.height
}

type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration probes the clip length in seconds.
func (t *Toolkit) Duration(ctx context.Context, path string) (float64, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, services.Wrap(services.ErrConfiguration, "media", "probe", "empty path", nil)
	}

	cmd := commandContext(ctx, t.ffprobeBinary, "-v", "error", "-hide_banner", "-show_format", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "media", "probe", strings.TrimSpace(string(output)), err)
	}

	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "media", "probe", "parse ffprobe output", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(result.Format.Duration), 64)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "media", "probe", fmt.Sprintf("invalid duration %q", result.Format.Duration), err)
	}
	return duration, nil
}

// MixStatic lays a synthetic noise bed of matching duration under the input
// at low relative gain. Duration-preserving; returns the clip length.
func (t *Toolkit) MixStatic(ctx context.Context, inputWav, outputWav string) (float64, error) {
	duration, err := t.Duration(ctx, inputWav)
	if err != nil {
		return 0, err
	}

	noiseSource := fmt.Sprintf("aevalsrc=random(0):s=44100:d=%s", formatFloat(duration))
	filter := fmt.Sprintf("[1:a]volume=%s[noise];[0:a][noise]amix=inputs=2:duration=first[audio_out]", formatFloat(t.noiseGain))
	cmd := commandContext(ctx, t.ffmpegBinary,
		"-i", inputWav,
		"-f", "lavfi",
		"-i", noiseSource,
		"-filter_complex", filter,
		"-map", "[audio_out]",
		"-shortest",
		outputWav,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "media", "mix", strings.TrimSpace(string(output)), err)
	}
	return duration, nil
}

// RenderSpectrum produces an MP4 with a spectrogram visualization track
// muxed over the audio.
func (t *Toolkit) RenderSpectrum(ctx context.Context, inputWav, outputMP4 string) error {
	filter := fmt.Sprintf("showspectrum=s=%dx%d:mode=separate:color=intensity,format=yuv420p[v]", t.width, t.height)
	cmd := commandContext(ctx, t.ffmpegBinary,
		"-i", inputWav,
		"-filter_complex", filter,
		"-map", "[v]",
		"-map", "0:a",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-b:a", "192k",
		"-shortest",
		outputMP4,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return services.Wrap(services.ErrExternalTool, "media", "render", strings.TrimSpace(string(output)), err)
	}
	return nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
