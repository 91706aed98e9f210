// Package slack handles the outbound half of the relay: the preconfigured
// production/test destination table and the incoming-webhook HTTP client.
package slack

import (
	"strings"

	"matchrelay/internal/config"
	"matchrelay/internal/types"
)

// Destinations is the fixed two-entry outbound URL table, assembled once at
// process start from the Slack host and the per-destination path suffixes.
// Read-only after construction; config validation guarantees both suffixes
// are present before the relay serves requests.
type Destinations struct {
	production string
	test       string
}

// NewDestinations builds the destination table from configuration.
func NewDestinations(cfg config.SlackConfig) Destinations {
	host := strings.TrimSuffix(cfg.Host, "/")
	return Destinations{
		production: host + ensureLeadingSlash(cfg.ProdPath.Unmask()),
		test:       host + ensureLeadingSlash(cfg.TestPath.Unmask()),
	}
}

// For returns the webhook URL for an environment. Anything that is not
// explicitly production goes to the test destination; misrouting sandbox
// traffic into the team channel is the costlier mistake.
func (d Destinations) For(env types.Environment) string {
	if env == types.EnvProduction {
		return d.production
	}
	return d.test
}

func ensureLeadingSlash(path string) string {
	if path == "" || strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}
