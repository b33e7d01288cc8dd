package errs

// Kind sentinels. Every error returned by the use case layer carries
// exactly one of these marks; handlers switch on KindOf.
var (
	ErrNotFound     = New("not found")
	ErrConflict     = New("conflict")
	ErrInvalidInput = New("invalid input")
	ErrBusy         = New("busy")
	ErrInternal     = New("internal error")
)

type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindInvalidInput Kind = "invalid_input"
	KindBusy         Kind = "busy"
	KindInternal     Kind = "internal"
)

// NewKind creates a sentinel error marked with the given kind sentinel.
func NewKind(msg string, kind error) error {
	return Mark(New(msg), kind)
}

// KindOf classifies err. Unmarked errors are internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrNotFound):
		return KindNotFound
	case Is(err, ErrConflict):
		return KindConflict
	case Is(err, ErrInvalidInput):
		return KindInvalidInput
	case Is(err, ErrBusy):
		return KindBusy
	default:
		return KindInternal
	}
}
