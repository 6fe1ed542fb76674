package explorer

import "errors"

// InputErrorKind says why a search was rejected.
type InputErrorKind int

const (
	// EmptyIdentifier means no identifier was submitted.
	EmptyIdentifier InputErrorKind = iota + 1
	// NotFound covers every lookup failure: 404, network, malformed body.
	NotFound
)

// InputError is shown inline on the dashboard. Its message never carries the
// underlying cause, which is available through errors.Unwrap for logging.
type InputError struct {
	Kind  InputErrorKind
	Cause error
}

func (e *InputError) Error() string {
	switch e.Kind {
	case EmptyIdentifier:
		return "enter an owner/repo identifier"
	default:
		return "error searching for this repository"
	}
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is an *InputError of the given kind.
func IsKind(err error, kind InputErrorKind) bool {
	var ie *InputError
	return errors.As(err, &ie) && ie.Kind == kind
}
