package schema

// Recipient is the send-side target union: exactly one of Address or
// GroupID is set.
type Recipient struct {
	Address *Address
	GroupID string
}

// apply merges the recipient into a request payload using the field names
// the send/react requests expect.
func (r Recipient) apply(payload map[string]any) {
	if r.GroupID != "" {
		payload["recipientGroupId"] = r.GroupID

		return
	}
	payload["recipientAddress"] = r.Address
}

// SubscribeRequest builds a subscribe request for the given account.
func SubscribeRequest(account string) map[string]any {
	return map[string]any{
		"type":    "subscribe",
		"version": "v1",
		"account": account,
	}
}

// SendTextRequest builds a send request carrying a message body.
func SendTextRequest(account string, to Recipient, body string) map[string]any {
	payload := map[string]any{
		"type":        "send",
		"version":     "v1",
		"username":    account,
		"messageBody": body,
	}
	to.apply(payload)

	return payload
}

// SendAttachmentRequest builds a send request carrying one attachment. The
// filename points at a staged file readable by the daemon.
func SendAttachmentRequest(
	account string,
	to Recipient,
	filename, customFilename, contentType string,
) map[string]any {
	payload := map[string]any{
		"type":     "send",
		"version":  "v1",
		"username": account,
		"attachments": []Attachment{{
			Filename:       filename,
			CustomFilename: customFilename,
			ContentType:    contentType,
		}},
	}
	to.apply(payload)

	return payload
}

// TypingRequest builds a typing indicator request. The typing endpoint
// addresses groups and contacts through separate fields.
func TypingRequest(account string, to Recipient, typing bool) map[string]any {
	payload := map[string]any{
		"type":    "typing",
		"version": "v1",
		"account": account,
		"typing":  typing,
	}
	if to.GroupID != "" {
		payload["group"] = to.GroupID
	} else {
		payload["address"] = to.Address
	}

	return payload
}

// ReactRequest builds a reaction request. Removal is signaled by
// reaction.Remove, with the original emoji left empty.
func ReactRequest(account string, to Recipient, reaction Reaction) map[string]any {
	payload := map[string]any{
		"type":     "react",
		"version":  "v1",
		"username": account,
		"reaction": reaction,
	}
	to.apply(payload)

	return payload
}

// MarkReadRequest builds a read-receipt request acknowledging the given
// timestamps to the message source.
func MarkReadRequest(account string, to *Address, timestamps []int64) map[string]any {
	return map[string]any{
		"type":       "mark_read",
		"version":    "v1",
		"account":    account,
		"to":         to,
		"timestamps": timestamps,
	}
}
