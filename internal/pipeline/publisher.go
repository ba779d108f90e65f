package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"shortwave/internal/archive"
	"shortwave/internal/bluesky"
	"shortwave/internal/broadcast"
	"shortwave/internal/config"
	"shortwave/internal/logging"
	"shortwave/internal/notifications"
	"shortwave/internal/services"
)

// Text length cutoffs applied when composing the post record.
const (
	videoCaptionLimit     = 299
	textOnlyLimit         = 300
	textOnlyPlaceholder   = "Ready? Ready?"
	maxEmbedDurationSecs  = 60
	serviceAuthCapability = "com.atproto.repo.uploadBlob"
	serviceAuthLifetime   = 30 * time.Minute
)

// Synthesizer renders a broadcast message to a WAV file.
type Synthesizer interface {
	Synthesize(ctx context.Context, msg broadcast.Message, wavPath string) error
}

// Media mixes and renders broadcast audio.
type Media interface {
	MixStatic(ctx context.Context, inputWav, outputWav string) (float64, error)
	RenderSpectrum(ctx context.Context, inputWav, outputMP4 string) error
	AspectRatio() (width, height int)
}

// Result summarizes a completed run.
type Result struct {
	RunID           string
	Message         broadcast.Message
	DurationSeconds float64
	PostURI         string
	EmbedKind       string
	Skipped         bool
	SkipReason      string
}

// Publisher drives a broadcast from generation through posting.
type Publisher struct {
	cfg      *config.Config
	logger   *slog.Logger
	synth    Synthesizer
	media    Media
	client   bluesky.Client
	store    *archive.Store
	notifier notifications.Service

	rng   *rand.Rand
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// Option adjusts publisher behaviour, mostly for tests.
type Option func(*Publisher)

// WithRand replaces the chance-gate randomness source.
func WithRand(rng *rand.Rand) Option {
	return func(p *Publisher) {
		if rng != nil {
			p.rng = rng
		}
	}
}

// WithSleep replaces the poll delay between upload status checks.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Publisher) {
		if sleep != nil {
			p.sleep = sleep
		}
	}
}

// WithClock replaces the wall clock used for auth expiry.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		if now != nil {
			p.now = now
		}
	}
}

// New builds a publisher from its collaborators.
func New(cfg *config.Config, logger *slog.Logger, synth Synthesizer, media Media, client bluesky.Client, store *archive.Store, notifier notifications.Service, opts ...Option) *Publisher {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	p := &Publisher{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "pipeline"),
		synth:    synth,
		media:    media,
		client:   client,
		store:    store,
		notifier: notifier,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:    sleepContext,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ShouldPost rolls the configured chance gate. force bypasses the roll.
func (p *Publisher) ShouldPost(force bool) (bool, float64) {
	roll := p.rng.Float64()
	if force {
		return true, roll
	}
	return roll <= p.cfg.Bluesky.PostChance, roll
}

// Run executes a full publication attempt for the given message.
func (p *Publisher) Run(ctx context.Context, msg broadcast.Message) (*Result, error) {
	runID := uuid.NewString()
	logger := p.logger.With(logging.String(logging.FieldRunID, runID), logging.String(logging.FieldLanguage, string(msg.Language)))
	result := &Result{RunID: runID, Message: msg}

	if !msg.Language.Supported() {
		// A vocabulary bug, not a transport failure. Treated as a clean skip
		// to match the posting cadence of an unattended scheduler.
		logger.Warn("skipping broadcast with unsupported language")
		result.Skipped = true
		result.SkipReason = fmt.Sprintf("unsupported language %q", msg.Language)
		_ = p.notifier.NotifyPostSkipped(ctx, result.SkipReason)
		return result, services.Wrap(services.ErrUnsupportedLanguage, "pipeline", "language", string(msg.Language), nil)
	}

	if strings.TrimSpace(msg.Text) == "" {
		return result, services.Wrap(services.ErrValidation, "pipeline", "generate", "empty broadcast message", nil)
	}

	logger.Info("starting broadcast run", logging.Int("char_count", msg.CharCount()))

	if _, err := p.client.Login(ctx, p.cfg.Bluesky.Handle, p.cfg.Bluesky.Password); err != nil {
		p.notifyError(ctx, err, "login")
		return result, err
	}

	scratch := filepath.Join(p.cfg.Paths.WorkDir, runID)
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return result, fmt.Errorf("create scratch directory: %w", err)
	}
	defer func() {
		if p.cfg.KeepArtifacts {
			logger.Info("retaining scratch directory", logging.String("path", scratch))
			return
		}
		if err := os.RemoveAll(scratch); err != nil {
			logger.Warn("failed to remove scratch directory", logging.Error(err))
		}
	}()

	voicePath := filepath.Join(scratch, "voice.wav")
	if err := p.synth.Synthesize(ctx, msg, voicePath); err != nil {
		p.notifyError(ctx, err, "synth")
		return result, err
	}
	logger.Info("synthesized voice track", logging.String(logging.FieldStage, "synth"))

	mixedPath := filepath.Join(scratch, "mixed.wav")
	duration, err := p.media.MixStatic(ctx, voicePath, mixedPath)
	if err != nil {
		p.notifyError(ctx, err, "mix")
		return result, err
	}
	result.DurationSeconds = duration
	logger.Info("mixed static bed", logging.String(logging.FieldStage, "mix"), logging.Float64("duration_seconds", duration))

	if duration >= maxEmbedDurationSecs {
		return p.postTextOnly(ctx, logger, result)
	}

	videoPath := filepath.Join(scratch, runID+".mp4")
	if err := p.media.RenderSpectrum(ctx, mixedPath, videoPath); err != nil {
		p.notifyError(ctx, err, "render")
		return result, err
	}
	logger.Info("rendered spectrogram video", logging.String(logging.FieldStage, "render"))

	blob, err := p.uploadVideo(ctx, logger, videoPath)
	if err != nil {
		p.notifyError(ctx, err, "upload")
		return result, err
	}

	caption := msg.Text
	if msg.CharCount() >= videoCaptionLimit {
		caption = ""
	}
	width, height := p.media.AspectRatio()
	uri, err := p.client.Post(ctx, bluesky.PostInput{
		Text:  caption,
		Embed: bluesky.NewVideoEmbed(blob, width, height),
	})
	if err != nil {
		p.notifyError(ctx, err, "post")
		return result, err
	}
	result.PostURI = uri
	result.EmbedKind = archive.EmbedVideo
	logger.Info("published broadcast", logging.String("post_uri", uri))

	p.recordRun(ctx, logger, result)
	return result, nil
}

// postTextOnly handles runs whose audio is too long for a video embed.
func (p *Publisher) postTextOnly(ctx context.Context, logger *slog.Logger, result *Result) (*Result, error) {
	logger.Info("duration exceeds embed limit, posting text only", logging.Float64("duration_seconds", result.DurationSeconds))

	text := result.Message.Text
	if result.Message.CharCount() > textOnlyLimit {
		text = textOnlyPlaceholder
	}
	uri, err := p.client.Post(ctx, bluesky.PostInput{Text: text})
	if err != nil {
		p.notifyError(ctx, err, "post")
		return result, err
	}
	result.PostURI = uri
	result.EmbedKind = archive.EmbedNone
	logger.Info("published broadcast", logging.String("post_uri", uri))

	p.recordRun(ctx, logger, result)
	return result, nil
}

// uploadVideo pushes the rendered MP4 through the video service and polls the
// processing job until a blob reference is ready.
func (p *Publisher) uploadVideo(ctx context.Context, logger *slog.Logger, videoPath string) (*bluesky.BlobRef, error) {
	token, err := p.client.GetServiceAuth(ctx, bluesky.ServiceAuthRequest{
		Capability: serviceAuthCapability,
		Expiry:     p.now().Add(serviceAuthLifetime),
	})
	if err != nil {
		return nil, err
	}

	video, err := os.ReadFile(videoPath)
	if err != nil {
		return nil, fmt.Errorf("read rendered video: %w", err)
	}

	status, err := p.client.UploadVideo(ctx, token, filepath.Base(videoPath), video)
	if err != nil {
		return nil, err
	}
	logger.Info("video upload accepted",
		logging.String(logging.FieldStage, "upload"),
		logging.String("job_id", status.JobID),
		logging.Int("size_bytes", len(video)))

	if status.Blob != nil {
		return status.Blob, nil
	}
	if status.State.Failed() {
		return nil, services.Wrap(services.ErrUpload, "upload", "job", status.Error, nil)
	}

	interval := time.Duration(p.cfg.Upload.PollIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Second
	}
	attempts := p.cfg.Upload.PollMaxAttempts
	if attempts <= 0 {
		attempts = 300
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := p.sleep(ctx, interval); err != nil {
			return nil, err
		}
		polled, err := p.client.GetJobStatus(ctx, status.JobID)
		if err != nil {
			return nil, err
		}
		logger.Info("upload job status",
			logging.String("job_id", status.JobID),
			logging.String("state", string(polled.State)),
			logging.Int("progress", polled.Progress),
			logging.Int("attempt", attempt))
		if polled.Blob != nil {
			return polled.Blob, nil
		}
		if polled.State.Failed() {
			return nil, services.Wrap(services.ErrUpload, "upload", "job", polled.Error, nil)
		}
	}
	return nil, services.Wrap(services.ErrTimeout, "upload", "poll",
		fmt.Sprintf("job %s still processing after %d attempts", status.JobID, attempts), nil)
}

func (p *Publisher) recordRun(ctx context.Context, logger *slog.Logger, result *Result) {
	if p.store != nil {
		entry := archive.Entry{
			CreatedAt:       p.now().UTC(),
			Language:        string(result.Message.Language),
			Text:            result.Message.Text,
			CharCount:       result.Message.CharCount(),
			DurationSeconds: result.DurationSeconds,
			EmbedKind:       result.EmbedKind,
			PostURI:         result.PostURI,
		}
		if _, err := p.store.Record(ctx, entry); err != nil {
			logger.Warn("failed to archive broadcast", logging.Error(err))
		}
	}
	if err := p.notifier.NotifyPostPublished(ctx, string(result.Message.Language), result.PostURI, result.DurationSeconds); err != nil {
		logger.Warn("failed to send notification", logging.Error(err))
	}
}

func (p *Publisher) notifyError(ctx context.Context, err error, stage string) {
	if notifyErr := p.notifier.NotifyError(ctx, err, stage); notifyErr != nil {
		p.logger.Warn("failed to send error notification", logging.Error(notifyErr))
	}
}
