package render

import (
	"strconv"
	"strings"
)

// compLevelLabels maps TBA competition level codes to display labels.
var compLevelLabels = map[string]string{
	"qm": "Qualification",
	"ef": "Octo-finals",
	"qf": "Quarterfinals",
	"sf": "Semifinals",
	"f":  "Finals",
}

// scheduleUpdated announces a change to the match schedule.
func (r *Renderer) scheduleUpdated(data map[string]any) string {
	var sb strings.Builder
	sb.WriteString("Match added")
	if ts, ok := asEpoch(data["first_match_time"]); ok {
		sb.WriteString(", first match at ")
		sb.WriteString(r.timeToken(ts))
	}
	if name := getString(data, "event_name"); name != "" {
		sb.WriteString(" (")
		sb.WriteString(name)
		sb.WriteString(")")
	}
	return sb.String()
}

// startingCompLevel announces that a new competition phase is beginning.
// Unknown level codes render as the literal "Unknown".
func (r *Renderer) startingCompLevel(data map[string]any) string {
	label, ok := compLevelLabels[getString(data, "comp_level")]
	if !ok {
		label = "Unknown"
	}
	return label + " matches are starting"
}

// allianceSelection reports the playoff alliance picks: the event name and
// end date, then a numbered line per alliance listing its picks.
func (r *Renderer) allianceSelection(data map[string]any) string {
	var sb strings.Builder
	sb.WriteString("Alliance selections")
	if name := getString(data, "event_name"); name != "" {
		sb.WriteString(" for ")
		sb.WriteString(name)
	}

	event, hasEvent := getMap(data, "event")
	if hasEvent {
		if endDate := getString(event, "end_date"); endDate != "" {
			sb.WriteString(" (ends ")
			sb.WriteString(endDate)
			sb.WriteString(")")
		}
	}

	if hasEvent {
		if alliances, ok := getSlice(event, "alliances"); ok {
			for i, a := range alliances {
				alliance, ok := a.(map[string]any)
				if !ok {
					continue
				}
				sb.WriteString("\n")
				sb.WriteString(strconv.Itoa(i + 1))
				sb.WriteString(".")
				if picks, ok := getSlice(alliance, "picks"); ok {
					for _, p := range picks {
						if key, ok := p.(string); ok {
							sb.WriteString(" ")
							sb.WriteString(r.teamLabel(key))
						}
					}
				}
			}
		}
	}

	return sb.String()
}

// awardsPosted reports ceremony results: one line per recipient per award.
// A recipient may name a team, an individual awardee, or both.
func (r *Renderer) awardsPosted(data map[string]any) string {
	awards := data["awards"].([]any)

	var lines []string
	for _, a := range awards {
		award, ok := a.(map[string]any)
		if !ok {
			continue
		}
		recipients, ok := getSlice(award, "recipient_list")
		if !ok {
			continue
		}
		for _, rec := range recipients {
			recipient, ok := rec.(map[string]any)
			if !ok {
				continue
			}

			var sb strings.Builder
			sb.WriteString(formatNumber(award["year"]))
			sb.WriteString(" ")
			sb.WriteString(getString(award, "name"))
			sb.WriteString(":")

			teamKey := getString(recipient, "team_key")
			awardee := getString(recipient, "awardee")
			if teamKey != "" {
				sb.WriteString(" ")
				sb.WriteString(r.teamLabel(teamKey))
			}
			if awardee != "" {
				if teamKey != "" {
					sb.WriteString(" (")
					sb.WriteString(awardee)
					sb.WriteString(")")
				} else {
					sb.WriteString(" ")
					sb.WriteString(awardee)
				}
			}
			lines = append(lines, sb.String())
		}
	}

	return strings.Join(lines, "\n")
}
