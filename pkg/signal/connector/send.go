package connector

import (
	"context"
	"fmt"
	"os"

	"github.com/lintfly/signalbridge/pkg/signal/events"
	"github.com/lintfly/signalbridge/pkg/signal/schema"
)

// SendText sends a text message to an alias or raw target.
func (c *Connector) SendText(ctx context.Context, target, text string) error {
	recipient, err := c.resolver.ToRecipient(target)
	if err != nil {
		return err
	}

	c.logger.Info("send text", "target", target)
	_, err = c.daemon.Request(ctx, schema.SendTextRequest(
		c.opts.BotNumber, recipient, text,
	))

	return err
}

// SendFile sends a file-family message. The bytes are staged to a
// temporary file the daemon can read, which is removed after the send
// completes regardless of outcome.
func (c *Connector) SendFile(
	ctx context.Context,
	target, name, mimetype string,
	data []byte,
) error {
	recipient, err := c.resolver.ToRecipient(target)
	if err != nil {
		return err
	}

	staged, err := c.stageAttachment(data)
	if err != nil {
		return err
	}
	defer func() {
		if removeErr := os.Remove(staged); removeErr != nil {
			c.logger.Warn("remove staged attachment", "error", removeErr)
		}
	}()

	c.logger.Info("send file", "name", name, "target", target)
	_, err = c.daemon.Request(ctx, schema.SendAttachmentRequest(
		c.opts.BotNumber, recipient, staged, name, mimetype,
	))

	return err
}

// stageAttachment writes outbound attachment bytes under the configured
// outgoing path and returns the staged file name.
func (c *Connector) stageAttachment(data []byte) (string, error) {
	file, err := os.CreateTemp(c.opts.OutgoingPath, "attachment-*")
	if err != nil {
		return "", fmt.Errorf("stage attachment: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())

		return "", fmt.Errorf("stage attachment: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(file.Name())

		return "", fmt.Errorf("stage attachment: %w", err)
	}

	return file.Name(), nil
}

// SendTyping sets or clears the typing indicator for a target.
func (c *Connector) SendTyping(ctx context.Context, target string, typing bool) error {
	recipient, err := c.resolver.ToRecipient(target)
	if err != nil {
		return err
	}

	c.logger.Info("send typing", "typing", typing, "target", target)
	_, err = c.daemon.Request(ctx, schema.TypingRequest(
		c.opts.BotNumber, recipient, typing,
	))

	return err
}

// SendReaction reacts to the linked event. An empty emoji removes the
// bot's earlier reaction.
func (c *Connector) SendReaction(
	ctx context.Context,
	target, emoji string,
	linked events.Linked,
) error {
	recipient, err := c.resolver.ToRecipient(target)
	if err != nil {
		return err
	}

	reaction := schema.Reaction{
		Emoji:               emoji,
		Remove:              emoji == "",
		TargetAuthor:        &schema.Address{Number: linked.UserID},
		TargetSentTimestamp: linked.EventID,
	}

	c.logger.Info("send reaction", "emoji", emoji, "target", target)
	_, err = c.daemon.Request(ctx, schema.ReactRequest(
		c.opts.BotNumber, recipient, reaction,
	))

	return err
}
