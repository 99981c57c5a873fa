package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRoundTrip(t *testing.T) {
	inputs := []string{
		"simple-group-id",
		"",
		string([]byte{0x00, 0xff, 0x10, 0x80, 0x7f}),
		"id with spaces and ünïcode ✓",
	}

	for _, input := range inputs {
		encoded := EncodeGroup(input)
		assert.True(t, len(encoded) >= len(GroupMarker))

		decoded, err := DecodeGroup(encoded)
		require.NoError(t, err)
		assert.Equal(t, input, decoded)
	}
}

func TestDecodeGroupRejectsBadBase64(t *testing.T) {
	_, err := DecodeGroup("group.!!!not-base64!!!")
	require.Error(t, err)
}

func TestToRecipientAddress(t *testing.T) {
	resolver := NewResolver(map[string]string{"alice": "+1555"})

	recipient, err := resolver.ToRecipient("alice")
	require.NoError(t, err)
	require.NotNil(t, recipient.Address)
	assert.Equal(t, "+1555", recipient.Address.Number)
	assert.Empty(t, recipient.GroupID)
}

func TestToRecipientGroup(t *testing.T) {
	encoded := EncodeGroup("binary-group-id")
	resolver := NewResolver(map[string]string{"devs": encoded})

	recipient, err := resolver.ToRecipient("devs")
	require.NoError(t, err)
	assert.Nil(t, recipient.Address)
	assert.Equal(t, "binary-group-id", recipient.GroupID)
}

func TestToRecipientPassthrough(t *testing.T) {
	resolver := NewResolver(nil)

	recipient, err := resolver.ToRecipient("+1999")
	require.NoError(t, err)
	require.NotNil(t, recipient.Address)
	assert.Equal(t, "+1999", recipient.Address.Number)
}

func TestAliasInversion(t *testing.T) {
	resolver := NewResolver(map[string]string{"alice": "+1555"})

	assert.Equal(t, "alice", resolver.Alias("+1555"))
	assert.Equal(t, "+1777", resolver.Alias("+1777"))
	assert.Equal(t, "+1555", resolver.Lookup("alice"))
	assert.Equal(t, "unknown", resolver.Lookup("unknown"))
}
