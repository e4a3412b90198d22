package utils

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrMissingVariable        = errors.New("missing prompt variable")
	ErrCompletionTransport    = errors.New("completion transport error")
	ErrMalformedModelOutput   = errors.New("malformed model output")
	ErrLocationSearchDisabled = errors.New("location search is not configured")
	ErrLocationSearchFailed   = errors.New("location search failed")
)

// IsRetryable reports whether err may succeed if the same request is sent again.
// Only transport failures qualify; a malformed answer needs re-prompting.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrCompletionTransport)
}
