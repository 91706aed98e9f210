package types

// Environment selects which Slack destination a rendered message is sent to.
type Environment string

const (
	// EnvProduction routes to the live team channel.
	EnvProduction Environment = "production"

	// EnvTest routes to the sandbox channel. Diagnostic notifications
	// (verification, ping, unrecognized kinds) and anything tagged with the
	// TBA test event always land here.
	EnvTest Environment = "test"
)

// Notification is a single inbound payload from the TBA webhook feed.
// The feed discriminates payload shape with message_type; message_data is an
// open mapping whose shape depends on the kind. Received once per request,
// never persisted.
type Notification struct {
	Kind string         `json:"message_type"`
	Data map[string]any `json:"message_data"`
}

// EventKey returns the top-level event identifier from the payload, or the
// empty string if none is present. Several kinds carry it; the router uses it
// to detect sandbox traffic.
func (n Notification) EventKey() string {
	key, _ := n.Data["event_key"].(string)
	return key
}

// EventName returns the human-readable event name, or the empty string.
func (n Notification) EventName() string {
	name, _ := n.Data["event_name"].(string)
	return name
}
