package record

import "errors"

var (
	// ErrStorage wraps failures of the key-value backend.
	ErrStorage = errors.New("storage failure")
	// ErrCodec wraps failures to encode or decode a stored value.
	ErrCodec = errors.New("codec failure")
)

// Outcome tells apart the ways a mutation can end.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeStorageFailure
	OutcomeCodecFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not found"
	case OutcomeStorageFailure:
		return "storage failure"
	case OutcomeCodecFailure:
		return "codec failure"
	}
	return "unknown"
}

// Classify maps the (bool, error) result of a mutation to an Outcome.
// Errors that are neither codec nor storage errors count as storage failures.
func Classify(ok bool, err error) Outcome {
	switch {
	case errors.Is(err, ErrCodec):
		return OutcomeCodecFailure
	case err != nil:
		return OutcomeStorageFailure
	case !ok:
		return OutcomeNotFound
	}
	return OutcomeOK
}

// Succeeded collapses a mutation result into a single success flag.
func Succeeded(ok bool, err error) bool {
	return ok && err == nil
}
