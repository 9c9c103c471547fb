package worker

import (
	"context"
	"errors"
)

// JobHandler executes one type of background job.
type JobHandler interface {
	// Type returns the job type identifier; it must match jobs.job_type.
	Type() string

	// Handle executes the job. The payload is the raw JSON stored with the
	// job. Wrap an error with NewPermanentError to stop retries.
	Handle(ctx context.Context, payload []byte) error
}

// PermanentError marks a failure that retrying cannot fix, such as a
// malformed payload or a deleted inspection.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// NewPermanentError wraps err so the job is failed without retry.
func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err, or any error it wraps, is a PermanentError.
func IsPermanent(err error) bool {
	var permErr *PermanentError
	return errors.As(err, &permErr)
}
