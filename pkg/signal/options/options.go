// Package options holds the connector configuration.
package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lintfly/signalbridge/pkg/sigerrs"
)

// Options configures a connector instance.
type Options struct {
	// SocketPath is the signald control socket. When empty the connector
	// probes the default locations.
	SocketPath string `yaml:"socket-path"`

	// BotNumber is the account the connector subscribes and sends as.
	BotNumber string `yaml:"bot-number"`

	// OutgoingPath is the directory where outbound attachments are staged
	// for the daemon to pick up. Empty means the system temp directory.
	OutgoingPath string `yaml:"outgoing-path"`

	// Rooms maps aliases to raw targets (phone numbers or marked group
	// ids). Two aliases naming the same raw target collide when the
	// mapping is inverted for display; keeping aliases unique per target
	// is a configuration responsibility.
	Rooms map[string]string `yaml:"rooms"`

	// WhitelistedNumbers restricts inbound events to the listed sources.
	// Entries are resolved through Rooms before matching, so an alias may
	// be whitelisted by name. Empty means no filtering.
	WhitelistedNumbers []string `yaml:"whitelisted-numbers"`

	// MaxBufferSize bounds a single inbound frame. Zero means the default.
	MaxBufferSize int `yaml:"max-buffer-size"`
}

// Load reads options from a YAML file and validates them.
func Load(path string) (*Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}

	var opts Options
	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return nil, fmt.Errorf("parse options: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &opts, nil
}

// Validate checks required settings.
func (o *Options) Validate() error {
	if o.BotNumber == "" {
		return sigerrs.NewValidationError(
			sigerrs.ErrCodeInvalidConfig,
			"bot-number is required",
			nil,
			"bot-number",
		)
	}

	return nil
}

// Whitelist returns the whitelisted sources with each entry resolved
// through the rooms table, so whitelisting an alias whitelists the raw
// target it names.
func (o *Options) Whitelist() []string {
	if len(o.WhitelistedNumbers) == 0 {
		return nil
	}

	resolved := make([]string, 0, len(o.WhitelistedNumbers))
	for _, entry := range o.WhitelistedNumbers {
		if raw, ok := o.Rooms[entry]; ok {
			entry = raw
		}
		resolved = append(resolved, entry)
	}

	return resolved
}
