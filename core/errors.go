package core

import "errors"

var (
	ErrPeripheralsTaken = errors.New("peripherals already taken")
	ErrDisplayInit      = errors.New("display initialization failed")
	ErrDisplayWrite     = errors.New("display write failed")
	ErrTimerState       = errors.New("timer not in the required state")
	ErrInvalidFrequency = errors.New("invalid timer frequency")
	ErrBusUnavailable   = errors.New("I2C bus unavailable")
)

// wrappedError ties a hardware error to the sentinel describing which step
// failed. errors.Is matches both.
type wrappedError struct {
	kind  error
	cause error
}

func wrap(kind, cause error) error {
	return &wrappedError{kind: kind, cause: cause}
}

func (e *wrappedError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *wrappedError) Unwrap() []error {
	return []error{e.kind, e.cause}
}
