package utils

import (
	"fmt"
)

// Wraps a sentinel error with a formatted detail message, so callers can still match it with [errors.Is]
func MakeError(err error, detailsBody string, args ...any) error {
	return fmt.Errorf("%w: "+detailsBody, append([]any{err}, args...)...)
}
