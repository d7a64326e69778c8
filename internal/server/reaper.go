package server

import (
	"sort"
	"time"
)

// reapOffline is the lazy liveness sweep. It runs at the start of every
// session-touching request, under the store lock, so a silent client is
// detected without any background timer.
//
// Candidates are armed, non-eliminated participants whose last_seen_at is
// older than the liveness window, processed oldest gap first. The sweep stops
// as soon as one elimination closes the round; remaining candidates wait for
// the next invocation. When no close happened and exactly one armed
// participant remains after a round has run, the session auto-finishes with
// that participant as winner.
func (s *Server) reapOffline(g *Session, now time.Time, fx *sideEffects) {
	if g.State == stateActive {
		stale := make([]*Participant, 0)
		deadline := now.Add(-s.offlineAfter)
		for i := range g.Participants {
			p := &g.Participants[i]
			if p.Armed && !p.eliminated() && p.LastSeenAt.Before(deadline) {
				stale = append(stale, p)
			}
		}
		sort.Slice(stale, func(i, j int) bool {
			return stale[i].LastSeenAt.Before(stale[j].LastSeenAt)
		})
		for _, p := range stale {
			outcome := eliminate(g, p, reasonSensorOffline, nil, now, fx)
			if outcome.RoundClosed {
				return
			}
		}
	}

	if g.RoundNo < 1 {
		return
	}
	if g.State != stateActive && g.State != stateRest {
		return
	}
	if winner := g.soleSurvivor(); winner != nil {
		autoFinish(g, winner, now, fx)
	}
}
