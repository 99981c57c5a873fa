// Package events defines the normalized chat event records produced by the
// envelope parser and consumed by bot-side handlers.
package events

import "time"

// Event is the discriminated union of normalized chat events.
type Event interface {
	// Meta returns the fields shared by every event variant.
	Meta() Base
	// MarkRead reports whether receiving this event should trigger a read
	// acknowledgement. The receive loop, not the parser, acts on it.
	MarkRead() bool

	event()
}

// Linked points at an earlier event, identified by its author and send
// timestamp. Reactions carry it to name the reacted-to message.
type Linked struct {
	UserID  string
	EventID int64
}

// Base holds the fields shared by every event variant.
type Base struct {
	// UserID is the raw source address (phone-number form).
	UserID string
	// User is the alias-resolved source.
	User string
	// Target is the alias-resolved conversation target; a group alias when
	// the envelope carried group routing, otherwise the source alias.
	Target string
	// EventID is the envelope timestamp, which Signal uses as the message
	// identity for receipts and reactions.
	EventID int64
	// Raw is the source envelope, kept for handlers that need daemon
	// fields the normalized record drops.
	Raw any
	// Linked references the related event for replies and reactions.
	Linked *Linked
}

// Meta implements Event for every variant embedding Base.
func (b Base) Meta() Base { return b }

// Text is a plain text message.
type Text struct {
	Base
	Text string
}

func (Text) event()         {}
func (Text) MarkRead() bool { return true }

// Typing is a typing indicator change.
type Typing struct {
	Base
	// Trigger is true when typing started, false when it stopped.
	Trigger bool
	// Timeout hints how long the indicator should be shown.
	Timeout time.Duration
}

func (Typing) event()         {}
func (Typing) MarkRead() bool { return false }

// Reaction is an emoji reaction to an earlier message. An empty Emoji
// signals that the reaction was removed.
type Reaction struct {
	Base
	Emoji string
}

func (Reaction) event()         {}
func (Reaction) MarkRead() bool { return false }

// FileKind selects the File specialization by detected MIME major type.
type FileKind int

const (
	// FileGeneric covers any attachment that is neither image nor video.
	FileGeneric FileKind = iota
	// FileImage covers attachments with an image/* content type.
	FileImage
	// FileVideo covers attachments with a video/* content type.
	FileVideo
)

// String returns the kind name.
func (k FileKind) String() string {
	switch k {
	case FileImage:
		return "image"
	case FileVideo:
		return "video"
	default:
		return "file"
	}
}

// File is an attachment with its bytes read fully into memory.
type File struct {
	Base
	Kind     FileKind
	Bytes    []byte
	Name     string
	MimeType string
}

func (File) event()         {}
func (File) MarkRead() bool { return true }
