// Package render turns TBA feed notifications into Slack-markup text.
//
// It is the core of the relay: a dispatcher that classifies an inbound
// payload by message kind and renders kind-specific text, plus the
// production/test environment classification derived from payload content.
// Rendering is a pure, synchronous computation with no I/O.
package render

import (
	"fmt"
	"time"

	"matchrelay/internal/types"
)

// Known notification kinds from the TBA feed. The enumeration is open-world:
// the feed can introduce new kinds without notice, and those must degrade to
// the unrecognized-kind fallback rather than crash.
const (
	KindUpcomingMatch     = "upcoming_match"
	KindMatchScore        = "match_score"
	KindScheduleUpdated   = "schedule_updated"
	KindStartingCompLevel = "starting_comp_level"
	KindAllianceSelection = "alliance_selection"
	KindMatchVideo        = "match_video"
	KindAwardsPosted      = "awards_posted"
	KindBroadcast         = "broadcast"
	KindVerification      = "verification"
	KindPing              = "ping"
)

// TestEventKey is TBA's well-known sandbox event. Notifications tagged with
// it are routed to the test destination regardless of kind.
const TestEventKey = "2014necmp"

// Result is a rendered notification: the Slack message text and the
// destination environment it should be delivered to.
type Result struct {
	Text        string
	Environment types.Environment
}

// Renderer holds the immutable per-process rendering inputs. It is safe for
// concurrent use; Render never mutates it.
type Renderer struct {
	ownTeam string
	loc     *time.Location
}

// New creates a Renderer. ownTeam is the operator's team number (already
// stripped of the frc prefix); empty disables emphasis. loc is the location
// for fallback time rendering; nil means UTC.
func New(ownTeam string, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{ownTeam: ownTeam, loc: loc}
}

// Render produces the message text and environment tag for a notification.
//
// The environment is decided first, from a fully defensive classification, so
// it survives any rendering failure. Recognized kinds access some nested
// structures strictly; a truly malformed payload surfaces as an error (never
// a panic past this function), and the caller is expected to substitute a
// fallback message rather than drop the notification.
//
// Unrecognized kinds never fail: they render a generic message carrying the
// raw kind and the current timestamp.
func (r *Renderer) Render(n types.Notification, now time.Time) (res Result, err error) {
	res.Environment = Classify(n)

	defer func() {
		if rec := recover(); rec != nil {
			res.Text = ""
			err = fmt.Errorf("rendering %q notification: %v", n.Kind, rec)
		}
	}()

	switch n.Kind {
	case KindUpcomingMatch:
		res.Text = r.upcomingMatch(n.Data)
	case KindMatchScore:
		res.Text = r.matchScore(n.Data)
	case KindScheduleUpdated:
		res.Text = r.scheduleUpdated(n.Data)
	case KindStartingCompLevel:
		res.Text = r.startingCompLevel(n.Data)
	case KindAllianceSelection:
		res.Text = r.allianceSelection(n.Data)
	case KindMatchVideo:
		res.Text = r.matchVideo(n.Data)
	case KindAwardsPosted:
		res.Text = r.awardsPosted(n.Data)
	case KindBroadcast:
		res.Text = r.broadcast(n.Data)
	case KindVerification:
		res.Text = r.verification(n.Data)
	case KindPing:
		res.Text = r.ping(n.Data)
	default:
		res.Text = r.unknown(n.Kind, now)
	}

	return res, nil
}

// Classify decides the destination environment for a notification. It never
// fails on malformed payloads: anything it cannot read counts as "not the
// test event". The decision is made once per notification and never reverts
// from test to production.
func Classify(n types.Notification) types.Environment {
	switch n.Kind {
	case KindUpcomingMatch, KindMatchScore, KindScheduleUpdated,
		KindStartingCompLevel, KindAllianceSelection, KindMatchVideo,
		KindAwardsPosted, KindBroadcast:
		// Recognized competition kinds: fall through to the event key check.
	default:
		// verification, ping, and anything we don't know how to render are
		// diagnostic by nature.
		return types.EnvTest
	}

	if n.EventKey() == TestEventKey {
		return types.EnvTest
	}

	// match_video payloads carry a second event key nested in the match
	// object, which can differ from the top-level one. Both must be checked.
	if n.Kind == KindMatchVideo {
		if match, ok := getMap(n.Data, "match"); ok {
			if getString(match, "event_key") == TestEventKey {
				return types.EnvTest
			}
		}
	}

	return types.EnvProduction
}
