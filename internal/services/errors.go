package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool marks a subprocess that exited non-zero.
	ErrExternalTool = errors.New("external tool error")
	// ErrMalformedMorse marks a morse message without an extractable code line.
	ErrMalformedMorse = errors.New("malformed morse payload")
	// ErrUpload marks a remote video-processing job that reported failure.
	ErrUpload = errors.New("upload error")
	// ErrTimeout marks an upload poll loop that exhausted its attempt budget.
	ErrTimeout = errors.New("timeout")
	// ErrValidation marks generator invariant violations. These indicate a
	// defect and should fail loudly.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable settings discovered at run time.
	ErrConfiguration = errors.New("configuration error")
)

// ErrUnsupportedLanguage marks a generated language outside the allow-list.
// Callers treat it as a clean skip rather than a failure.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "stage failure"
	}
	return strings.Join(parts, ": ")
}
