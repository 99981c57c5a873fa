// Package sigerrs provides the error handling framework for the signalbridge
// connector. It defines error categories, codes, and typed errors used across
// the transport, client, and parsing layers.
package sigerrs

import "errors"

// ErrorCategory represents different categories of errors that can occur
// while talking to the signald daemon.
type ErrorCategory string

const (
	// CategoryTransport represents socket-level errors.
	CategoryTransport ErrorCategory = "transport"
	// CategoryProtocol represents wire protocol errors.
	CategoryProtocol ErrorCategory = "protocol"
	// CategoryValidation represents payload validation errors.
	CategoryValidation ErrorCategory = "validation"
	// CategoryDaemon represents error frames returned by signald itself.
	CategoryDaemon ErrorCategory = "daemon"
	// CategoryConfig represents connector configuration errors.
	CategoryConfig ErrorCategory = "config"
)

// ErrorCode represents specific error codes within each category.
type ErrorCode string

// Transport error codes.
const (
	ErrCodeConnectionFailed ErrorCode = "connection_failed"
	ErrCodeConnectionClosed ErrorCode = "connection_closed"
	ErrCodeWriteFailed      ErrorCode = "write_failed"
	ErrCodeReadFailed       ErrorCode = "read_failed"
)

// Protocol error codes.
const (
	ErrCodeInvalidFrame  ErrorCode = "invalid_frame"
	ErrCodeDaemonError   ErrorCode = "daemon_error"
	ErrCodeDecodeFailed  ErrorCode = "decode_failed"
	ErrCodeRequestFailed ErrorCode = "request_failed"
)

// Validation error codes.
const (
	ErrCodeMissingField  ErrorCode = "missing_field"
	ErrCodeInvalidTarget ErrorCode = "invalid_target"
	ErrCodeInvalidConfig ErrorCode = "invalid_config"
)

// Sentinel errors for common failure states.
var (
	// ErrAlreadyConnected is returned when Connect is called on a live
	// connection. Double-connect is a programmer error.
	ErrAlreadyConnected = errors.New("signalbridge: already connected")
	// ErrNotConnected is returned when an operation requires an open
	// connection and none exists.
	ErrNotConnected = errors.New("signalbridge: not connected")
	// ErrConnectionClosed resolves pending requests when the connection
	// goes away before their response arrives.
	ErrConnectionClosed = errors.New("signalbridge: connection closed")
)
