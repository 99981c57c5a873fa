package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeIncoming(t *testing.T) {
	frame := map[string]any{
		"type":    TypeIncomingMessage,
		"version": "v1",
		"data": map[string]any{
			"source":    map[string]any{"number": "+1555", "uuid": "u-1"},
			"timestamp": 1234,
			"data_message": map[string]any{
				"body": "hello",
				"attachments": []any{map[string]any{
					"contentType":    "image/png",
					"storedFilename": "/var/lib/signald/a",
				}},
			},
		},
	}

	env, err := DecodeIncoming(frame)
	require.NoError(t, err)
	require.NotNil(t, env.Source)
	assert.Equal(t, "+1555", env.Source.Number)
	assert.Equal(t, int64(1234), env.Timestamp)
	require.NotNil(t, env.DataMessage)
	assert.Equal(t, "hello", env.DataMessage.Body)
	require.Len(t, env.DataMessage.Attachments, 1)
	assert.Equal(t, "image/png", env.DataMessage.Attachments[0].ContentType)
	assert.Nil(t, env.TypingMessage)
}

func TestDecodeIncomingMissingData(t *testing.T) {
	_, err := DecodeIncoming(map[string]any{"type": TypeIncomingMessage})
	require.Error(t, err)
}

func TestRecipientSelectsField(t *testing.T) {
	group := SendTextRequest("+1000", Recipient{GroupID: "g"}, "hi")
	assert.Equal(t, "g", group["recipientGroupId"])
	assert.NotContains(t, group, "recipientAddress")

	direct := SendTextRequest("+1000", Recipient{Address: &Address{Number: "+1555"}}, "hi")
	assert.NotContains(t, direct, "recipientGroupId")
	require.Contains(t, direct, "recipientAddress")
}

func TestMarkReadRequest(t *testing.T) {
	payload := MarkReadRequest("+1000", &Address{Number: "+1555"}, []int64{42})

	assert.Equal(t, "mark_read", payload["type"])
	assert.Equal(t, "v1", payload["version"])
	assert.Equal(t, "+1000", payload["account"])
	assert.Equal(t, []int64{42}, payload["timestamps"])
}
