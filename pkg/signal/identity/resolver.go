// Package identity maps between raw Signal identifiers and the aliases a
// bot configuration assigns to them, and encodes group identifiers into a
// transport-safe text form.
package identity

import (
	"encoding/base64"
	"strings"

	"github.com/lintfly/signalbridge/pkg/sigerrs"
	"github.com/lintfly/signalbridge/pkg/signal/schema"
)

// GroupMarker prefixes targets that encode a group identifier rather than
// a direct address.
const GroupMarker = "group."

// Resolver resolves aliases in both directions. The alias table is the
// inverse of the configured rooms mapping (alias -> raw target), computed
// once at construction. Two aliases mapping to the same raw target collide
// on inversion; the surviving entry is unspecified, which is a
// configuration responsibility, not handled here.
type Resolver struct {
	rooms   map[string]string
	aliases map[string]string
}

// NewResolver creates a resolver from the rooms mapping.
func NewResolver(rooms map[string]string) *Resolver {
	aliases := make(map[string]string, len(rooms))
	for alias, raw := range rooms {
		aliases[raw] = alias
	}

	return &Resolver{rooms: rooms, aliases: aliases}
}

// Lookup resolves an alias to its raw form. Unconfigured targets pass
// through unchanged.
func (r *Resolver) Lookup(target string) string {
	if raw, ok := r.rooms[target]; ok {
		return raw
	}

	return target
}

// Alias resolves a raw identifier to its configured alias. Unconfigured
// identifiers pass through unchanged.
func (r *Resolver) Alias(raw string) string {
	if alias, ok := r.aliases[raw]; ok {
		return alias
	}

	return raw
}

// ToRecipient resolves an alias into the recipient shape the send requests
// expect: a group recipient when the raw form carries the group marker,
// otherwise an address recipient.
func (r *Resolver) ToRecipient(target string) (schema.Recipient, error) {
	raw := r.Lookup(target)
	if strings.HasPrefix(raw, GroupMarker) {
		groupID, err := DecodeGroup(raw)
		if err != nil {
			return schema.Recipient{}, err
		}

		return schema.Recipient{GroupID: groupID}, nil
	}

	return schema.Recipient{Address: &schema.Address{Number: raw}}, nil
}

// EncodeGroup encodes a binary group identifier into its marked text form.
func EncodeGroup(groupID string) string {
	return GroupMarker + base64.StdEncoding.EncodeToString([]byte(groupID))
}

// DecodeGroup decodes a marked target back into the binary group
// identifier. It is the exact inverse of EncodeGroup.
func DecodeGroup(target string) (string, error) {
	encoded := strings.TrimPrefix(target, GroupMarker)
	groupID, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", sigerrs.NewValidationError(
			sigerrs.ErrCodeInvalidTarget,
			"decode group id",
			err,
			"target",
		)
	}

	return string(groupID), nil
}
