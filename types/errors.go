package types

import "errors"

var (
	// ErrEmptyQuestion is returned before any retrieval work when the
	// question is missing or blank.
	ErrEmptyQuestion = errors.New("question is required")

	// ErrUnsupportedFormat is an ingest-time, per-document failure.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrModelAuth marks a credential or authorization rejection from
	// the generative model. The message carries remediation guidance.
	ErrModelAuth = errors.New("model authorization failed")

	// ErrModelFailure covers every other generation failure.
	ErrModelFailure = errors.New("failed to process query")
)
