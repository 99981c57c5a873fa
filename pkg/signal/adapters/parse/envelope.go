package parse

import (
	"strings"
	"time"

	"github.com/lintfly/signalbridge/pkg/signal/events"
	"github.com/lintfly/signalbridge/pkg/signal/identity"
	"github.com/lintfly/signalbridge/pkg/signal/schema"
)

// typingTimeout is the indicator duration hint attached to every typing
// event; the daemon does not carry one.
const typingTimeout = 15 * time.Second

// parseContext carries the shared record fields through one envelope's
// parse. It is a value: each derivation copies and overrides, never
// mutates in place.
type parseContext struct {
	base events.Base
}

// withTarget returns a copy routed at the given target.
func (c parseContext) withTarget(target string) parseContext {
	c.base.Target = target

	return c
}

// parseEnvelope applies source filtering, resolves the default target, and
// fans out into the envelope's sub-messages.
func (p *Parser) parseEnvelope(env *schema.IncomingMessage) []events.Event {
	var sourceNumber string
	if env.Source != nil {
		sourceNumber = env.Source.Number
	}
	if sourceNumber == "" {
		p.logger.Warn("dropping message with no user id")
		p.metrics.EnvelopesDropped.WithLabelValues("no_source").Inc()

		return nil
	}

	if p.whitelist != nil {
		if _, ok := p.whitelist[sourceNumber]; !ok {
			p.logger.Warn("dropping message from non-whitelisted user", "user", sourceNumber)
			p.metrics.EnvelopesDropped.WithLabelValues("not_whitelisted").Inc()

			return nil
		}
	}

	alias := p.resolver.Alias(sourceNumber)
	ctx := parseContext{base: events.Base{
		UserID:  sourceNumber,
		User:    alias,
		Target:  alias,
		EventID: env.Timestamp,
		Raw:     env,
	}}

	var out []events.Event
	if env.DataMessage != nil {
		out = append(out, p.parseDataMessage(ctx, env.DataMessage)...)
	}
	if env.TypingMessage != nil {
		out = append(out, p.parseTypingMessage(ctx, env.TypingMessage)...)
	}

	for _, event := range out {
		p.metrics.EventsParsed.WithLabelValues(kindLabel(event)).Inc()
	}

	return out
}

// parseDataMessage emits the records carried by a data message: one
// reaction or one text (mutually exclusive, reaction wins), plus one file
// record per attachment, always processed regardless of that choice.
func (p *Parser) parseDataMessage(
	ctx parseContext,
	msg *schema.DataMessage,
) []events.Event {
	switch {
	case msg.Group != nil:
		ctx = ctx.withTarget(p.groupTarget(msg.Group.GroupID))
	case msg.GroupV2 != nil:
		ctx = ctx.withTarget(p.groupTarget(msg.GroupV2.ID))
	}

	var out []events.Event
	switch {
	case msg.Reaction != nil:
		out = append(out, p.parseReaction(ctx, msg.Reaction))
	case msg.Body != "":
		out = append(out, p.parseText(ctx, msg.Body))
	}

	for i := range msg.Attachments {
		if event, ok := p.parseAttachment(ctx, &msg.Attachments[i]); ok {
			out = append(out, event)
		}
	}

	return out
}

// parseReaction emits exactly one reaction record. A removal forces the
// emoji to the empty string whatever the frame carried.
func (p *Parser) parseReaction(
	ctx parseContext,
	reaction *schema.Reaction,
) events.Event {
	linked := &events.Linked{EventID: reaction.TargetSentTimestamp}
	if reaction.TargetAuthor != nil {
		linked.UserID = reaction.TargetAuthor.Number
	}

	emoji := reaction.Emoji
	if reaction.Remove {
		emoji = ""
	}

	p.logger.Info("received reaction", "emoji", emoji, "target", ctx.base.Target)

	base := ctx.base
	base.Linked = linked

	return events.Reaction{Base: base, Emoji: emoji}
}

// parseText emits exactly one text record.
func (p *Parser) parseText(ctx parseContext, body string) events.Event {
	p.logger.Info("received text", "text", body, "target", ctx.base.Target)

	return events.Text{Base: ctx.base, Text: body}
}

// parseAttachment emits one file-family record with the attachment bytes
// read fully from the daemon's store. The declared content type selects
// the specialization. Unreadable attachments are logged and skipped.
func (p *Parser) parseAttachment(
	ctx parseContext,
	att *schema.Attachment,
) (events.Event, bool) {
	data, err := p.readFile(att.StoredFilename)
	if err != nil {
		p.logger.Warn("dropping unreadable attachment",
			"file", att.StoredFilename, "error", err)

		return nil, false
	}

	kind := events.FileGeneric
	switch {
	case strings.HasPrefix(att.ContentType, "image/"):
		kind = events.FileImage
	case strings.HasPrefix(att.ContentType, "video/"):
		kind = events.FileVideo
	}

	p.logger.Info("received file", "name", att.CustomFilename, "target", ctx.base.Target)

	return events.File{
		Base:     ctx.base,
		Kind:     kind,
		Bytes:    data,
		Name:     att.CustomFilename,
		MimeType: att.ContentType,
	}, true
}

// parseTypingMessage emits exactly one typing record. Only a "STARTED"
// action triggers the indicator; any other action clears it.
func (p *Parser) parseTypingMessage(
	ctx parseContext,
	msg *schema.TypingMessage,
) []events.Event {
	if msg.GroupID != "" {
		ctx = ctx.withTarget(p.groupTarget(msg.GroupID))
	}

	trigger := msg.Action == schema.TypingActionStarted
	p.logger.Info("received typing", "trigger", trigger, "target", ctx.base.Target)

	return []events.Event{events.Typing{
		Base:    ctx.base,
		Trigger: trigger,
		Timeout: typingTimeout,
	}}
}

// groupTarget encodes a raw group id into its marked text form and
// resolves any configured alias for it.
func (p *Parser) groupTarget(groupID string) string {
	return p.resolver.Alias(identity.EncodeGroup(groupID))
}

// kindLabel names an event variant for metrics.
func kindLabel(event events.Event) string {
	switch e := event.(type) {
	case events.Text:
		return "text"
	case events.Typing:
		return "typing"
	case events.Reaction:
		return "reaction"
	case events.File:
		return e.Kind.String()
	default:
		return "unknown"
	}
}
