package sigerrs

import "fmt"

// DaemonError represents an error frame returned by signald for a specific
// request. It carries the upstream error type and message verbatim.
type DaemonError struct {
	*connErr
	// ErrorType is the daemon-assigned error classification.
	ErrorType string
	// Message is the nested human-readable message, empty when the daemon
	// omits it.
	Message string
	// Payload is the full error frame for callers that need more detail.
	Payload map[string]any
}

// NewDaemonError creates a daemon error from a raw error frame. The frame
// must carry an "error_type" field; the nested "error.message" field is
// optional and defaults to the empty string.
func NewDaemonError(frame map[string]any) *DaemonError {
	errorType, _ := frame["error_type"].(string)

	var message string
	if nested, ok := frame["error"].(map[string]any); ok {
		message, _ = nested["message"].(string)
	}

	return &DaemonError{
		connErr:   newConnErr(CategoryDaemon, ErrCodeDaemonError, errorType, nil),
		ErrorType: errorType,
		Message:   message,
		Payload:   frame,
	}
}

// Error implements the error interface in the daemon's own terms.
func (e *DaemonError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorType, e.Message)
}
