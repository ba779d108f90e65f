// Package bluesky speaks the small slice of the AT Protocol this bot needs:
// session login, record creation, service auth tokens, and the video ingest
// job API.
//
// The publisher consumes the Client interface and never constructs the
// concrete XRPC client itself, so tests can substitute a scripted double.
package bluesky
