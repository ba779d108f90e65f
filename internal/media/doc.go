// Package media wraps the external ffmpeg/ffprobe tooling used to measure,
// mix, and visualize broadcast audio.
//
// Every operation is a pure transformation over files identified by path.
// Nothing retries: a non-zero exit from the underlying tool fails the run.
package media
