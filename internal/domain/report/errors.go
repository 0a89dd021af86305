package report

import "errors"

// Error taxonomy for workflow commands. Handlers map these to HTTP
// statuses; services never coerce one into default content.
var (
	// ErrValidation indicates malformed command input, rejected before
	// any store access.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates the caller is not the patient owner or
	// the assigned doctor of the targeted report.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidTransition indicates the command is not legal from the
	// report's current status.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrPreconditionFailed indicates the report changed between command
	// issuance and the write; the caller should refresh and retry.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrNotFound indicates the referenced report or doctor does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable indicates a transient store failure; the command
	// may be retried by the caller. No automatic retry is performed.
	ErrStoreUnavailable = errors.New("store unavailable")
)
