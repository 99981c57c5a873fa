package sigerrs

import (
	"fmt"
	"strings"
)

// connErr is the shared core of the connector's typed errors. It pins a
// failure to a category for coarse handling and a code for exact matching,
// and keeps the cause reachable for errors.Is and errors.As chains. Short
// key=value details carry context like the failing socket path or a
// correlation id into the rendered message, so call sites don't need a
// dedicated error type per field.
type connErr struct {
	category ErrorCategory
	code     ErrorCode
	message  string
	cause    error
	details  []errDetail
}

type errDetail struct {
	key   string
	value string
}

// newConnErr creates the shared error core; the typed constructors in this
// package are the only callers.
func newConnErr(
	category ErrorCategory,
	code ErrorCode,
	message string,
	cause error,
) *connErr {
	return &connErr{
		category: category,
		code:     code,
		message:  message,
		cause:    cause,
	}
}

// detail appends one key=value pair to the rendered message. Details keep
// insertion order.
func (e *connErr) detail(key, value string) {
	e.details = append(e.details, errDetail{key: key, value: value})
}

// Error implements the error interface, rendering
// "category: message [key=value ...]: cause" with the detail block and
// cause omitted when absent.
func (e *connErr) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.category, e.message)

	if len(e.details) > 0 {
		b.WriteString(" [")
		for i, d := range e.details {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(d.key)
			b.WriteByte('=')
			b.WriteString(d.value)
		}
		b.WriteByte(']')
	}

	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}

	return b.String()
}

// Category returns the error category.
func (e *connErr) Category() ErrorCategory {
	return e.category
}

// Code returns the error code.
func (e *connErr) Code() ErrorCode {
	return e.code
}

// Unwrap returns the underlying error.
func (e *connErr) Unwrap() error {
	return e.cause
}
