package pokemon

import "errors"

// Error kinds returned by Service. Handlers map them to HTTP statuses;
// ErrUnavailable and ErrInternal wrap a cause that is logged, never shown.
var (
	ErrAlreadyExists = errors.New("pokemon already exists in the database")
	ErrNotFound      = errors.New("pokemon not found in the lookup service")
	ErrNoTrainers    = errors.New("no trainers available")
	ErrUnavailable   = errors.New("database unavailable")
	ErrInternal      = errors.New("internal error")
)
