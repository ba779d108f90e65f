package bluesky

import (
	"context"
	"time"
)

// JobState enumerates remote video-processing job states. Values carry the
// wire strings.
type JobState string

const (
	JobStateQueued     JobState = "JOB_STATE_QUEUED"
	JobStateProcessing JobState = "JOB_STATE_PROCESSING"
	JobStateDone       JobState = "JOB_STATE_COMPLETED"
	JobStateFailed     JobState = "JOB_STATE_FAILED"
)

// Failed reports whether the job ended without producing a blob.
func (s JobState) Failed() bool {
	return s == JobStateFailed
}

// BlobRef is an opaque handle to uploaded binary media held by the service.
type BlobRef struct {
	Type string `json:"$type"`
	Ref  struct {
		Link string `json:"$link"`
	} `json:"ref"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// Session holds the authenticated identity returned by createSession.
type Session struct {
	DID        string `json:"did"`
	Handle     string `json:"handle"`
	AccessJWT  string `json:"accessJwt"`
	RefreshJWT string `json:"refreshJwt"`
}

// JobStatus reports the state of a remote video-processing job.
type JobStatus struct {
	JobID    string   `json:"jobId"`
	State    JobState `json:"state"`
	Progress int      `json:"progress,omitempty"`
	Blob     *BlobRef `json:"blob,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// AspectRatio describes the embed display ratio.
type AspectRatio struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// VideoEmbed attaches a processed video blob to a post.
type VideoEmbed struct {
	Type        string       `json:"$type"`
	Video       *BlobRef     `json:"video"`
	AspectRatio *AspectRatio `json:"aspectRatio,omitempty"`
}

// NewVideoEmbed builds the standard video embed record.
func NewVideoEmbed(blob *BlobRef, width, height int) *VideoEmbed {
	return &VideoEmbed{
		Type:        "app.bsky.embed.video",
		Video:       blob,
		AspectRatio: &AspectRatio{Width: width, Height: height},
	}
}

// PostInput is the material for one post.
type PostInput struct {
	Text  string
	Embed *VideoEmbed
}

// ServiceAuthRequest asks for a short-lived capability-scoped token. An empty
// Audience defaults to the client's own PDS host.
type ServiceAuthRequest struct {
	Audience   string
	Capability string
	Expiry     time.Time
}

// Client is the social surface the publisher consumes.
type Client interface {
	Login(ctx context.Context, identifier, secret string) (*Session, error)
	Post(ctx context.Context, post PostInput) (string, error)
	GetServiceAuth(ctx context.Context, req ServiceAuthRequest) (string, error)
	UploadVideo(ctx context.Context, token, filename string, video []byte) (*JobStatus, error)
	GetJobStatus(ctx context.Context, jobID string) (*JobStatus, error)
}
