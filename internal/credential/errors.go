package credential

import "fmt"

// NotFoundError is returned when no usable API key could be located.
type NotFoundError struct {
	Path   string // state database consulted, if any
	Reason string
	Hint   string
	Cause  error
}

func (e *NotFoundError) Error() string {
	msg := "api key not found: " + e.Reason
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *NotFoundError) Unwrap() error { return e.Cause }
