package render

import (
	"strings"
	"time"
)

// broadcast relays a free-form announcement from the feed operators.
func (r *Renderer) broadcast(data map[string]any) string {
	var parts []string
	if title := getString(data, "title"); title != "" {
		parts = append(parts, title)
	}
	if desc := getString(data, "desc"); desc != "" {
		parts = append(parts, desc)
	}
	if url := getString(data, "url"); url != "" {
		parts = append(parts, "Click: "+link(url, url))
	}
	return strings.Join(parts, " ")
}

// verification emits the verification code as the entire message so the
// operator can copy it back to the feed's registration form.
func (r *Renderer) verification(data map[string]any) string {
	return getString(data, "verification_key")
}

// ping acknowledges a connectivity test from the feed.
func (r *Renderer) ping(data map[string]any) string {
	if desc := getString(data, "desc"); desc != "" {
		return "Ping: " + desc
	}
	return "Ping received"
}

// unknown handles kinds this relay has no renderer for. The feed introduces
// new kinds without notice; a generic message carrying the raw kind keeps
// the notification visible instead of dropping it.
func (r *Renderer) unknown(kind string, now time.Time) string {
	return "TBA is trying to tell us something about " + kind +
		" at " + r.timeToken(now.Unix())
}
