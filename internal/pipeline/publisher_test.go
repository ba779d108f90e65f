package pipeline_test

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"shortwave/internal/archive"
	"shortwave/internal/bluesky"
	"shortwave/internal/broadcast"
	"shortwave/internal/config"
	"shortwave/internal/logging"
	"shortwave/internal/pipeline"
	"shortwave/internal/services"
	"shortwave/internal/testsupport"
)

type fakeSynth struct {
	calls []broadcast.Message
	err   error
}

func (f *fakeSynth) Synthesize(_ context.Context, msg broadcast.Message, wavPath string) error {
	f.calls = append(f.calls, msg)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(wavPath, []byte("RIFF"), 0o644)
}

type fakeMedia struct {
	duration    float64
	mixCalls    int
	renderCalls int
	renderErr   error
}

func (f *fakeMedia) MixStatic(_ context.Context, _, outputWav string) (float64, error) {
	f.mixCalls++
	if err := os.WriteFile(outputWav, []byte("RIFF"), 0o644); err != nil {
		return 0, err
	}
	return f.duration, nil
}

func (f *fakeMedia) RenderSpectrum(_ context.Context, _, outputMP4 string) error {
	f.renderCalls++
	if f.renderErr != nil {
		return f.renderErr
	}
	return os.WriteFile(outputMP4, []byte("mp4"), 0o644)
}

func (f *fakeMedia) AspectRatio() (int, int) { return 1280, 720 }

type fakeClient struct {
	loginCalls   int
	authReq      bluesky.ServiceAuthRequest
	uploadName   string
	uploadBytes  int
	uploadStatus *bluesky.JobStatus
	uploadErr    error

	pollStatuses []*bluesky.JobStatus
	pollCalls    int

	posts   []bluesky.PostInput
	postURI string
	postErr error
}

func (f *fakeClient) Login(context.Context, string, string) (*bluesky.Session, error) {
	f.loginCalls++
	return &bluesky.Session{DID: "did:plc:test", Handle: "station.example"}, nil
}

func (f *fakeClient) Post(_ context.Context, post bluesky.PostInput) (string, error) {
	f.posts = append(f.posts, post)
	if f.postErr != nil {
		return "", f.postErr
	}
	if f.postURI == "" {
		return "at://did:plc:test/app.bsky.feed.post/1", nil
	}
	return f.postURI, nil
}

func (f *fakeClient) GetServiceAuth(_ context.Context, req bluesky.ServiceAuthRequest) (string, error) {
	f.authReq = req
	return "service-token", nil
}

func (f *fakeClient) UploadVideo(_ context.Context, token, filename string, video []byte) (*bluesky.JobStatus, error) {
	if token != "service-token" {
		return nil, errors.New("unexpected token")
	}
	f.uploadName = filename
	f.uploadBytes = len(video)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	if f.uploadStatus != nil {
		return f.uploadStatus, nil
	}
	return &bluesky.JobStatus{JobID: "job-1", State: bluesky.JobStateQueued}, nil
}

func (f *fakeClient) GetJobStatus(context.Context, string) (*bluesky.JobStatus, error) {
	if f.pollCalls < len(f.pollStatuses) {
		status := f.pollStatuses[f.pollCalls]
		f.pollCalls++
		return status, nil
	}
	f.pollCalls++
	return &bluesky.JobStatus{JobID: "job-1", State: bluesky.JobStateProcessing}, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithCredentials("station.example", "app-password"))
	cfg.Upload.PollIntervalSeconds = 1
	cfg.Upload.PollMaxAttempts = 5
	return cfg
}

func noSleep(context.Context, time.Duration) error { return nil }

// fixedSource makes rand.Float64 return a constant value.
type fixedSource struct{ v int64 }

func (s fixedSource) Int63() int64 { return s.v }
func (s fixedSource) Seed(int64)   {}

func fixedRand(f float64) *rand.Rand {
	return rand.New(fixedSource{v: int64(f * (1 << 63))})
}

func newPublisher(cfg *config.Config, synth *fakeSynth, media *fakeMedia, client *fakeClient, opts ...pipeline.Option) *pipeline.Publisher {
	opts = append([]pipeline.Option{pipeline.WithSleep(noSleep)}, opts...)
	return pipeline.New(cfg, logging.NewNop(), synth, media, client, nil, nil, opts...)
}

func message(text string, lang broadcast.Language) broadcast.Message {
	return broadcast.Message{Text: text, Language: lang}
}

func TestRunPublishesVideoPost(t *testing.T) {
	cfg := testConfig(t)
	synth := &fakeSynth{}
	media := &fakeMedia{duration: 18.5}
	blob := &bluesky.BlobRef{Type: "blob", MimeType: "video/mp4", Size: 3}
	client := &fakeClient{
		pollStatuses: []*bluesky.JobStatus{
			{JobID: "job-1", State: bluesky.JobStateProcessing, Progress: 50},
			{JobID: "job-1", State: bluesky.JobStateDone, Blob: blob},
		},
	}
	fixed := time.Date(2026, 3, 14, 13, 45, 0, 0, time.UTC)

	pub := newPublisher(cfg, synth, media, client, pipeline.WithClock(func() time.Time { return fixed }))
	result, err := pub.Run(context.Background(), message("FREQUENCY: 4625kHz", broadcast.LanguageEnglish))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if client.loginCalls != 1 {
		t.Fatalf("expected one login, got %d", client.loginCalls)
	}
	if len(synth.calls) != 1 || media.mixCalls != 1 || media.renderCalls != 1 {
		t.Fatalf("unexpected stage calls: synth=%d mix=%d render=%d", len(synth.calls), media.mixCalls, media.renderCalls)
	}
	if client.authReq.Capability != "com.atproto.repo.uploadBlob" {
		t.Fatalf("unexpected auth capability: %s", client.authReq.Capability)
	}
	if want := fixed.Add(30 * time.Minute); !client.authReq.Expiry.Equal(want) {
		t.Fatalf("expected auth expiry %v, got %v", want, client.authReq.Expiry)
	}
	if !strings.HasSuffix(client.uploadName, ".mp4") {
		t.Fatalf("expected mp4 upload name, got %q", client.uploadName)
	}
	if client.uploadBytes == 0 {
		t.Fatal("expected uploaded video bytes")
	}
	if len(client.posts) != 1 {
		t.Fatalf("expected one post, got %d", len(client.posts))
	}
	post := client.posts[0]
	if post.Text != "FREQUENCY: 4625kHz" {
		t.Fatalf("unexpected caption: %q", post.Text)
	}
	if post.Embed == nil || post.Embed.Video != blob {
		t.Fatalf("expected video embed with uploaded blob, got %#v", post.Embed)
	}
	if post.Embed.AspectRatio == nil || post.Embed.AspectRatio.Width != 1280 || post.Embed.AspectRatio.Height != 720 {
		t.Fatalf("unexpected aspect ratio: %#v", post.Embed.AspectRatio)
	}
	if result.PostURI == "" || result.EmbedKind != archive.EmbedVideo {
		t.Fatalf("unexpected result: %+v", result)
	}

	entries, err := os.ReadDir(cfg.Paths.WorkDir)
	if err != nil {
		t.Fatalf("read work dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected scratch directory to be removed, found %d entries", len(entries))
	}
}

func TestRunOmitsCaptionWhenTooLong(t *testing.T) {
	cfg := testConfig(t)
	blob := &bluesky.BlobRef{Type: "blob"}
	client := &fakeClient{
		uploadStatus: &bluesky.JobStatus{JobID: "job-1", State: bluesky.JobStateDone, Blob: blob},
	}
	pub := newPublisher(cfg, &fakeSynth{}, &fakeMedia{duration: 10}, client)

	long := strings.Repeat("7", 299)
	if _, err := pub.Run(context.Background(), message(long, broadcast.LanguageEnglish)); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(client.posts) != 1 || client.posts[0].Text != "" {
		t.Fatalf("expected empty caption for long message, got %q", client.posts[0].Text)
	}
	if client.posts[0].Embed == nil {
		t.Fatal("expected embed to survive caption truncation")
	}
}

func TestRunPollTimeout(t *testing.T) {
	cfg := testConfig(t)
	cfg.Upload.PollMaxAttempts = 3
	client := &fakeClient{}
	pub := newPublisher(cfg, &fakeSynth{}, &fakeMedia{duration: 10}, client)

	_, err := pub.Run(context.Background(), message("SIGNAL", broadcast.LanguageEnglish))
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if client.pollCalls != 3 {
		t.Fatalf("expected exactly 3 poll attempts, got %d", client.pollCalls)
	}
	if len(client.posts) != 0 {
		t.Fatal("expected no post after timeout")
	}
}

func TestRunUploadJobFailure(t *testing.T) {
	cfg := testConfig(t)
	client := &fakeClient{
		pollStatuses: []*bluesky.JobStatus{
			{JobID: "job-1", State: bluesky.JobStateFailed, Error: "transcode rejected"},
		},
	}
	pub := newPublisher(cfg, &fakeSynth{}, &fakeMedia{duration: 10}, client)

	_, err := pub.Run(context.Background(), message("SIGNAL", broadcast.LanguageEnglish))
	if !errors.Is(err, services.ErrUpload) {
		t.Fatalf("expected ErrUpload, got %v", err)
	}
	if !strings.Contains(err.Error(), "transcode rejected") {
		t.Fatalf("expected job error detail, got %v", err)
	}
}

func TestRunLongDurationPostsTextOnly(t *testing.T) {
	cfg := testConfig(t)
	media := &fakeMedia{duration: 60}
	client := &fakeClient{}
	pub := newPublisher(cfg, &fakeSynth{}, media, client)

	result, err := pub.Run(context.Background(), message("STATION: GAMMA-042", broadcast.LanguageEnglish))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if media.renderCalls != 0 {
		t.Fatal("expected no render for long broadcasts")
	}
	if len(client.posts) != 1 {
		t.Fatalf("expected one post, got %d", len(client.posts))
	}
	if client.posts[0].Embed != nil {
		t.Fatal("expected text-only post without embed")
	}
	if client.posts[0].Text != "STATION: GAMMA-042" {
		t.Fatalf("unexpected text: %q", client.posts[0].Text)
	}
	if result.EmbedKind != archive.EmbedNone {
		t.Fatalf("unexpected embed kind: %q", result.EmbedKind)
	}
}

func TestRunLongDurationUsesPlaceholderForOversizedText(t *testing.T) {
	cfg := testConfig(t)
	client := &fakeClient{}
	pub := newPublisher(cfg, &fakeSynth{}, &fakeMedia{duration: 75}, client)

	long := strings.Repeat("9", 301)
	if _, err := pub.Run(context.Background(), message(long, broadcast.LanguageEnglish)); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(client.posts) != 1 || client.posts[0].Text != "Ready? Ready?" {
		t.Fatalf("expected placeholder text, got %q", client.posts[0].Text)
	}
}

func TestRunRejectsEmptyMessage(t *testing.T) {
	cfg := testConfig(t)
	client := &fakeClient{}
	pub := newPublisher(cfg, &fakeSynth{}, &fakeMedia{duration: 10}, client)

	_, err := pub.Run(context.Background(), message("   ", broadcast.LanguageEnglish))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if client.loginCalls != 0 {
		t.Fatal("expected no login for empty message")
	}
}

func TestRunRejectsUnsupportedLanguage(t *testing.T) {
	cfg := testConfig(t)
	client := &fakeClient{}
	pub := newPublisher(cfg, &fakeSynth{}, &fakeMedia{duration: 10}, client)

	result, err := pub.Run(context.Background(), message("SIGNAL", broadcast.Language("fr")))
	if !errors.Is(err, services.ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
	if !result.Skipped {
		t.Fatal("expected result to be marked skipped")
	}
	if client.loginCalls != 0 {
		t.Fatal("expected no login for unsupported language")
	}
}

func TestRunKeepArtifactsRetainsScratch(t *testing.T) {
	cfg := testConfig(t)
	cfg.KeepArtifacts = true
	blob := &bluesky.BlobRef{Type: "blob"}
	client := &fakeClient{
		uploadStatus: &bluesky.JobStatus{JobID: "job-1", State: bluesky.JobStateDone, Blob: blob},
	}
	pub := newPublisher(cfg, &fakeSynth{}, &fakeMedia{duration: 10}, client)

	result, err := pub.Run(context.Background(), message("SIGNAL", broadcast.LanguageEnglish))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	scratch := filepath.Join(cfg.Paths.WorkDir, result.RunID)
	if _, err := os.Stat(scratch); err != nil {
		t.Fatalf("expected scratch directory to remain: %v", err)
	}
}

func TestRunArchivesBroadcast(t *testing.T) {
	cfg := testConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	blob := &bluesky.BlobRef{Type: "blob"}
	client := &fakeClient{
		uploadStatus: &bluesky.JobStatus{JobID: "job-1", State: bluesky.JobStateDone, Blob: blob},
	}
	pub := pipeline.New(cfg, logging.NewNop(), &fakeSynth{}, &fakeMedia{duration: 10}, client, store, nil, pipeline.WithSleep(noSleep))

	if _, err := pub.Run(context.Background(), message("СИГНАЛ 7", broadcast.LanguageRussian)); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	entries, err := store.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one archived entry, got %d", len(entries))
	}
	if entries[0].Language != "ru" || entries[0].EmbedKind != archive.EmbedVideo {
		t.Fatalf("unexpected archive entry: %+v", entries[0])
	}
}

func TestShouldPostRespectsChanceGate(t *testing.T) {
	cfg := testConfig(t)
	cfg.Bluesky.PostChance = 0.03
	client := &fakeClient{}

	pub := newPublisher(cfg, &fakeSynth{}, &fakeMedia{duration: 10}, client, pipeline.WithRand(fixedRand(0.5)))
	if ok, roll := pub.ShouldPost(false); ok {
		t.Fatalf("expected roll %v to skip posting", roll)
	}
	if ok, _ := pub.ShouldPost(true); !ok {
		t.Fatal("expected force to bypass chance gate")
	}

	pub = newPublisher(cfg, &fakeSynth{}, &fakeMedia{duration: 10}, client, pipeline.WithRand(fixedRand(0.01)))
	if ok, _ := pub.ShouldPost(false); !ok {
		t.Fatal("expected low roll to allow posting")
	}
}
