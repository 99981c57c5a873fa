// Package schema defines the signald wire payload types the connector
// touches. Frames are JSON objects, one per line; inbound notification
// frames wrap a typed payload under "data" with a "type" discriminant.
package schema

import (
	"encoding/json"
	"fmt"
)

// Notification frame type discriminants.
const (
	TypeIncomingMessage = "IncomingMessage"
	TypeListenerState   = "ListenerState"
	TypeWebSocketState  = "WebSocketConnectionState"
	TypeVersion         = "version"
)

// Typing actions carried by TypingMessage.Action.
const (
	TypingActionStarted = "STARTED"
	TypingActionStopped = "STOPPED"
)

// Address identifies a Signal account by phone number and/or UUID.
type Address struct {
	Number string `json:"number,omitempty"`
	UUID   string `json:"uuid,omitempty"`
}

// Group is a v1 group pointer carried inside a data message.
type Group struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name,omitempty"`
}

// GroupV2 is a v2 group pointer carried inside a data message.
type GroupV2 struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// Attachment describes one attachment of a data message. The daemon stores
// the bytes on disk and reports the location in StoredFilename.
type Attachment struct {
	ContentType    string `json:"contentType,omitempty"`
	CustomFilename string `json:"customFilename,omitempty"`
	StoredFilename string `json:"storedFilename,omitempty"`
	Filename       string `json:"filename,omitempty"`
	Size           int64  `json:"size,omitempty"`
}

// Reaction is an emoji reaction to an earlier message.
type Reaction struct {
	Emoji               string   `json:"emoji"`
	Remove              bool     `json:"remove,omitempty"`
	TargetAuthor        *Address `json:"targetAuthor,omitempty"`
	TargetSentTimestamp int64    `json:"targetSentTimestamp,omitempty"`
}

// DataMessage is the content-bearing part of an incoming message.
type DataMessage struct {
	Timestamp   int64        `json:"timestamp,omitempty"`
	Body        string       `json:"body,omitempty"`
	Group       *Group       `json:"group,omitempty"`
	GroupV2     *GroupV2     `json:"groupV2,omitempty"`
	Reaction    *Reaction    `json:"reaction,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// TypingMessage signals a typing indicator change.
type TypingMessage struct {
	Action    string `json:"action,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
	GroupID   string `json:"group_id,omitempty"`
}

// IncomingMessage is one daemon-observed event envelope.
type IncomingMessage struct {
	Source        *Address       `json:"source,omitempty"`
	Timestamp     int64          `json:"timestamp,omitempty"`
	DataMessage   *DataMessage   `json:"data_message,omitempty"`
	TypingMessage *TypingMessage `json:"typing_message,omitempty"`
}

// DecodeIncoming extracts the typed IncomingMessage payload from a raw
// notification frame. The frame's "data" field holds the envelope.
func DecodeIncoming(frame map[string]any) (*IncomingMessage, error) {
	data, ok := frame["data"]
	if !ok {
		return nil, fmt.Errorf("frame missing data field")
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("re-encode envelope data: %w", err)
	}

	var env IncomingMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode incoming message: %w", err)
	}

	return &env, nil
}
