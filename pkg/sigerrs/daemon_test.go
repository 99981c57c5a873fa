package sigerrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDaemonErrorCarriesTypeAndMessage(t *testing.T) {
	err := NewDaemonError(map[string]any{
		"error_type": "UnknownGroupError",
		"error":      map[string]any{"message": "no such group"},
	})

	assert.Equal(t, "UnknownGroupError", err.ErrorType)
	assert.Equal(t, "no such group", err.Message)
	assert.Equal(t, "UnknownGroupError: no such group", err.Error())
	assert.Equal(t, CategoryDaemon, err.Category())
}

func TestDaemonErrorWithoutNestedMessage(t *testing.T) {
	err := NewDaemonError(map[string]any{"error_type": "NoSuchAccount"})

	assert.Equal(t, "NoSuchAccount", err.ErrorType)
	assert.Empty(t, err.Message)
}
