package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// getString reads a string field from a decoded JSON object, treating absence
// or a wrong type as empty.
func getString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// getMap reads a nested object field from a decoded JSON object.
func getMap(m map[string]any, key string) (map[string]any, bool) {
	nested, ok := m[key].(map[string]any)
	return nested, ok
}

// getSlice reads an array field from a decoded JSON object.
func getSlice(m map[string]any, key string) ([]any, bool) {
	s, ok := m[key].([]any)
	return s, ok
}

// asEpoch coerces a decoded JSON value into a Unix timestamp. encoding/json
// decodes all numbers into float64; integers are accepted for values built by
// hand in the CLI harness and tests.
func asEpoch(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case int:
		return int64(t), true
	case int64:
		return t, true
	default:
		return 0, false
	}
}

// formatNumber renders a decoded JSON number without a fractional part when
// it has none. Scores, match numbers, and years arrive as float64.
func formatNumber(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// link renders the Slack markup for a hyperlink.
func link(url, label string) string {
	return fmt.Sprintf("<%s|%s>", url, label)
}

// teamLabel converts a source-specific team key (e.g. "frc2521") into its
// display label by stripping one leading frc prefix. The operator's own team
// is wrapped in emphasis markup so it stands out in match lists.
func (r *Renderer) teamLabel(key string) string {
	label := strings.TrimPrefix(key, "frc")
	if r.ownTeam != "" && label == r.ownTeam {
		return "*" + label + "*"
	}
	return label
}

// timeToken renders a Slack date token embedding the raw epoch value with a
// 24-hour HH:MM fallback. Clients that support live-localized date tokens
// show the viewer's local time; clients that do not fall back to the
// configured location's rendering.
func (r *Renderer) timeToken(ts int64) string {
	fallback := time.Unix(ts, 0).In(r.loc).Format("15:04")
	return fmt.Sprintf("<!date^%d^{time}|%s>", ts, fallback)
}
