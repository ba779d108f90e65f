// Package services defines the shared error taxonomy for pipeline stages.
//
// Sentinel errors classify failures (external tool, malformed morse, upload,
// timeout, validation) so callers can branch on errors.Is without parsing
// messages. Wrap attaches stage and operation context while preserving the
// sentinel for classification.
package services
