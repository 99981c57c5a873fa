package sigerrs

// TransportError represents socket-level errors.
type TransportError struct {
	*connErr
}

// NewTransportError creates a new transport error.
func NewTransportError(
	code ErrorCode,
	message string,
	cause error,
) *TransportError {
	return &TransportError{
		connErr: newConnErr(CategoryTransport, code, message, cause),
	}
}

// WithPath records the socket path the failure concerns.
func (e *TransportError) WithPath(path string) *TransportError {
	e.detail("path", path)

	return e
}

// ProtocolError represents wire protocol errors.
type ProtocolError struct {
	*connErr
}

// NewProtocolError creates a new protocol error.
func NewProtocolError(
	code ErrorCode,
	message string,
	cause error,
) *ProtocolError {
	return &ProtocolError{
		connErr: newConnErr(CategoryProtocol, code, message, cause),
	}
}

// WithRequestID records the correlation id of the failed request.
func (e *ProtocolError) WithRequestID(id string) *ProtocolError {
	e.detail("request_id", id)

	return e
}

// ValidationError represents payload validation errors.
type ValidationError struct {
	*connErr
	field string
}

// NewValidationError creates a new validation error.
func NewValidationError(
	code ErrorCode,
	message string,
	cause error,
	field string,
) *ValidationError {
	e := &ValidationError{
		connErr: newConnErr(CategoryValidation, code, message, cause),
		field:   field,
	}
	e.detail("field", field)

	return e
}

// Field returns the offending field name.
func (e *ValidationError) Field() string {
	return e.field
}
