// Package pipeline orchestrates a full broadcast run.
//
// A run generates a message, synthesizes its audio, mixes in static, renders
// the spectrogram video, uploads it through the Bluesky video service, and
// publishes the post. Each stage surfaces sentinel-tagged errors from
// internal/services so callers can classify failures, and every run works in
// its own scratch directory that is removed on completion unless artifact
// retention is enabled.
package pipeline
