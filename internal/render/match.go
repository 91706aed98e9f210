package render

import (
	"sort"
	"strings"
)

// upcomingMatch announces a match that is about to be played: the match key,
// both sides of the field, the scheduled and predicted start times, and a
// watch link when the event has a supported webcast.
func (r *Renderer) upcomingMatch(data map[string]any) string {
	var sb strings.Builder
	sb.WriteString("Upcoming match ")
	sb.WriteString(getString(data, "match_key"))

	// The first three team keys are one side of the field, the remainder the
	// opposing side.
	if teams, ok := getSlice(data, "team_keys"); ok && len(teams) > 0 {
		sb.WriteString(":")
		for i, t := range teams {
			if i == 3 {
				sb.WriteString(" vs.")
			}
			if key, ok := t.(string); ok {
				sb.WriteString(" ")
				sb.WriteString(r.teamLabel(key))
			}
		}
	}

	if ts, ok := asEpoch(data["scheduled_time"]); ok {
		sb.WriteString(" scheduled for ")
		sb.WriteString(r.timeToken(ts))
	}
	if ts, ok := asEpoch(data["predicted_time"]); ok {
		sb.WriteString(" (predicted ")
		sb.WriteString(r.timeToken(ts))
		sb.WriteString(")")
	}
	if name := getString(data, "event_name"); name != "" {
		sb.WriteString(" at ")
		sb.WriteString(name)
	}

	if webcast, ok := getMap(data, "webcast"); ok {
		channel := getString(webcast, "channel")
		switch getString(webcast, "type") {
		case "twitch":
			sb.WriteString(" ")
			sb.WriteString(link("https://www.twitch.tv/"+channel, "Watch on Twitch"))
		case "youtube":
			sb.WriteString(" ")
			sb.WriteString(link("https://youtube.com/watch?v="+channel, "Watch on YouTube"))
		}
	}

	return sb.String()
}

// matchScore reports the final score of a match, one segment per alliance.
// The alliances object is walked by key rather than assuming a fixed
// blue/red pair; keys are sorted so rendering stays deterministic.
//
// The match and alliances objects are accessed strictly: a payload claiming
// to be a match_score without them is malformed, and the failure is caught
// by Render's recover.
func (r *Renderer) matchScore(data map[string]any) string {
	match := data["match"].(map[string]any)
	alliances := match["alliances"].(map[string]any)

	var sb strings.Builder
	sb.WriteString("Match ")
	sb.WriteString(formatNumber(match["match_number"]))
	sb.WriteString(" results: ")

	names := make([]string, 0, len(alliances))
	for name := range alliances {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		alliance, ok := alliances[name].(map[string]any)
		if !ok {
			continue
		}
		sb.WriteString(name)
		sb.WriteString(" [ ")
		if teams, ok := getSlice(alliance, "team_keys"); ok {
			for _, t := range teams {
				if key, ok := t.(string); ok {
					sb.WriteString(r.teamLabel(key))
					sb.WriteString(" ")
				}
			}
		}
		sb.WriteString("] scored ")
		sb.WriteString(formatNumber(alliance["score"]))
		sb.WriteString("; ")
	}

	return strings.TrimSuffix(sb.String(), " ")
}

// matchVideo announces that footage of a match has been posted, with a watch
// link for every YouTube entry. The match object is accessed strictly; its
// nested event key matters for environment classification, not here.
func (r *Renderer) matchVideo(data map[string]any) string {
	match := data["match"].(map[string]any)

	var sb strings.Builder
	sb.WriteString("Video uploaded for match ")
	sb.WriteString(getString(match, "key"))

	if name := getString(data, "event_name"); name != "" {
		sb.WriteString(" at ")
		sb.WriteString(name)
	}

	if videos, ok := getSlice(match, "videos"); ok {
		for _, v := range videos {
			video, ok := v.(map[string]any)
			if !ok {
				continue
			}
			if getString(video, "type") == "youtube" {
				sb.WriteString(" ")
				sb.WriteString(link("https://youtube.com/watch?v="+getString(video, "key"), "Watch"))
			}
		}
	}

	return sb.String()
}
