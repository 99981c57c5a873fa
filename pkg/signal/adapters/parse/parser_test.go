package parse

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lintfly/signalbridge/pkg/signal/events"
	"github.com/lintfly/signalbridge/pkg/signal/identity"
)

// envelope builds an IncomingMessage frame the way signald frames it.
func envelope(data map[string]any) map[string]any {
	return map[string]any{
		"type":    "IncomingMessage",
		"version": "v1",
		"data":    data,
	}
}

func textEnvelope(source, body string) map[string]any {
	return envelope(map[string]any{
		"source":       map[string]any{"number": source},
		"timestamp":    1234567890,
		"data_message": map[string]any{"body": body},
	})
}

func newTestParser(whitelist []string, rooms map[string]string) *Parser {
	return NewParser(
		whitelist,
		identity.NewResolver(rooms),
		WithFileReader(func(name string) ([]byte, error) {
			return []byte("bytes:" + name), nil
		}),
	)
}

func TestTextEnvelope(t *testing.T) {
	parser := newTestParser(nil, map[string]string{"alice": "+1555"})

	records := parser.Parse(textEnvelope("+1555", "hello"))
	require.Len(t, records, 1)

	text, ok := records[0].(events.Text)
	require.True(t, ok)
	assert.Equal(t, "hello", text.Text)
	assert.Equal(t, "alice", text.Target)
	assert.Equal(t, "alice", text.User)
	assert.Equal(t, "+1555", text.UserID)
	assert.Equal(t, int64(1234567890), text.EventID)
	assert.True(t, text.MarkRead())
}

func TestUnknownFrameYieldsNothing(t *testing.T) {
	parser := newTestParser(nil, nil)

	assert.Empty(t, parser.Parse(map[string]any{"type": "ListenerState"}))
	assert.Empty(t, parser.Parse(map[string]any{"type": "IncomingMessage"}))
}

func TestNoSourceDropped(t *testing.T) {
	parser := newTestParser(nil, nil)

	records := parser.Parse(envelope(map[string]any{
		"timestamp":    1,
		"data_message": map[string]any{"body": "hello"},
	}))
	assert.Empty(t, records)
}

func TestWhitelistFiltering(t *testing.T) {
	parser := newTestParser([]string{"+1555"}, nil)

	assert.Empty(t, parser.Parse(textEnvelope("+1999", "hello")))

	records := parser.Parse(textEnvelope("+1555", "hello"))
	require.Len(t, records, 1)
}

func TestGroupTargetOverride(t *testing.T) {
	groupAlias := identity.EncodeGroup("the-group")
	parser := newTestParser(nil, map[string]string{
		"devs":  groupAlias,
		"alice": "+1555",
	})

	records := parser.Parse(envelope(map[string]any{
		"source":    map[string]any{"number": "+1555"},
		"timestamp": 2,
		"data_message": map[string]any{
			"body":  "hi all",
			"group": map[string]any{"groupId": "the-group"},
		},
	}))
	require.Len(t, records, 1)

	text := records[0].(events.Text)
	assert.Equal(t, "devs", text.Target)
	assert.Equal(t, "alice", text.User)
}

func TestGroupV2TargetOverride(t *testing.T) {
	parser := newTestParser(nil, nil)

	records := parser.Parse(envelope(map[string]any{
		"source":    map[string]any{"number": "+1555"},
		"timestamp": 3,
		"data_message": map[string]any{
			"body":    "hi",
			"groupV2": map[string]any{"id": "v2-group"},
		},
	}))
	require.Len(t, records, 1)
	assert.Equal(t, identity.EncodeGroup("v2-group"), records[0].Meta().Target)
}

func TestReactionRecord(t *testing.T) {
	parser := newTestParser(nil, nil)

	records := parser.Parse(envelope(map[string]any{
		"source":    map[string]any{"number": "+1555"},
		"timestamp": 4,
		"data_message": map[string]any{
			"reaction": map[string]any{
				"emoji":               "👍",
				"targetAuthor":        map[string]any{"number": "+1777"},
				"targetSentTimestamp": 42,
			},
		},
	}))
	require.Len(t, records, 1)

	reaction, ok := records[0].(events.Reaction)
	require.True(t, ok)
	assert.Equal(t, "👍", reaction.Emoji)
	require.NotNil(t, reaction.Linked)
	assert.Equal(t, "+1777", reaction.Linked.UserID)
	assert.Equal(t, int64(42), reaction.Linked.EventID)
	assert.False(t, reaction.MarkRead())
}

func TestReactionRemovalForcesEmptyEmoji(t *testing.T) {
	parser := newTestParser(nil, nil)

	records := parser.Parse(envelope(map[string]any{
		"source":    map[string]any{"number": "+1555"},
		"timestamp": 5,
		"data_message": map[string]any{
			"reaction": map[string]any{
				"emoji":  "👍",
				"remove": true,
			},
		},
	}))
	require.Len(t, records, 1)
	assert.Empty(t, records[0].(events.Reaction).Emoji)
}

func TestReactionSuppressesText(t *testing.T) {
	parser := newTestParser(nil, nil)

	records := parser.Parse(envelope(map[string]any{
		"source":    map[string]any{"number": "+1555"},
		"timestamp": 6,
		"data_message": map[string]any{
			"body":     "ignored",
			"reaction": map[string]any{"emoji": "🎉"},
		},
	}))
	require.Len(t, records, 1)
	assert.IsType(t, events.Reaction{}, records[0])
}

func TestAttachmentClassification(t *testing.T) {
	cases := []struct {
		contentType string
		kind        events.FileKind
	}{
		{"image/png", events.FileImage},
		{"video/mp4", events.FileVideo},
		{"application/pdf", events.FileGeneric},
	}

	parser := newTestParser(nil, nil)
	for _, tc := range cases {
		records := parser.Parse(envelope(map[string]any{
			"source":    map[string]any{"number": "+1555"},
			"timestamp": 7,
			"data_message": map[string]any{
				"attachments": []any{map[string]any{
					"contentType":    tc.contentType,
					"customFilename": "doc",
					"storedFilename": "/tmp/stored",
				}},
			},
		}))
		require.Len(t, records, 1, tc.contentType)

		file, ok := records[0].(events.File)
		require.True(t, ok)
		assert.Equal(t, tc.kind, file.Kind, tc.contentType)
		assert.Equal(t, tc.contentType, file.MimeType)
		assert.Equal(t, []byte("bytes:/tmp/stored"), file.Bytes)
		assert.True(t, file.MarkRead())
	}
}

func TestMultipleAttachmentsFanOut(t *testing.T) {
	parser := newTestParser(nil, nil)

	records := parser.Parse(envelope(map[string]any{
		"source":    map[string]any{"number": "+1555"},
		"timestamp": 8,
		"data_message": map[string]any{
			"attachments": []any{
				map[string]any{"contentType": "image/jpeg", "storedFilename": "a"},
				map[string]any{"contentType": "application/zip", "storedFilename": "b"},
			},
		},
	}))
	require.Len(t, records, 2)

	assert.Equal(t, events.FileImage, records[0].(events.File).Kind)
	assert.Equal(t, events.FileGeneric, records[1].(events.File).Kind)
	for _, record := range records {
		assert.True(t, record.MarkRead())
	}
}

func TestTextWithAttachments(t *testing.T) {
	parser := newTestParser(nil, nil)

	records := parser.Parse(envelope(map[string]any{
		"source":    map[string]any{"number": "+1555"},
		"timestamp": 9,
		"data_message": map[string]any{
			"body": "see attached",
			"attachments": []any{
				map[string]any{"contentType": "image/png", "storedFilename": "a"},
			},
		},
	}))
	require.Len(t, records, 2)
	assert.IsType(t, events.Text{}, records[0])
	assert.IsType(t, events.File{}, records[1])
}

func TestUnreadableAttachmentSkipped(t *testing.T) {
	parser := NewParser(nil, identity.NewResolver(nil),
		WithFileReader(func(name string) ([]byte, error) {
			return nil, fmt.Errorf("no such file %s", name)
		}),
	)

	records := parser.Parse(envelope(map[string]any{
		"source":    map[string]any{"number": "+1555"},
		"timestamp": 10,
		"data_message": map[string]any{
			"body": "still delivered",
			"attachments": []any{
				map[string]any{"contentType": "image/png", "storedFilename": "gone"},
			},
		},
	}))
	require.Len(t, records, 1)
	assert.IsType(t, events.Text{}, records[0])
}

func TestTypingStarted(t *testing.T) {
	parser := newTestParser(nil, nil)

	records := parser.Parse(envelope(map[string]any{
		"source":         map[string]any{"number": "+1555"},
		"timestamp":      11,
		"typing_message": map[string]any{"action": "STARTED"},
	}))
	require.Len(t, records, 1)

	typing, ok := records[0].(events.Typing)
	require.True(t, ok)
	assert.True(t, typing.Trigger)
	assert.Equal(t, 15*time.Second, typing.Timeout)
	assert.False(t, typing.MarkRead())
}

func TestTypingStopped(t *testing.T) {
	parser := newTestParser(nil, nil)

	records := parser.Parse(envelope(map[string]any{
		"source":         map[string]any{"number": "+1555"},
		"timestamp":      12,
		"typing_message": map[string]any{"action": "STOPPED", "group_id": "g"},
	}))
	require.Len(t, records, 1)

	typing := records[0].(events.Typing)
	assert.False(t, typing.Trigger)
	assert.Equal(t, identity.EncodeGroup("g"), typing.Target)
}
