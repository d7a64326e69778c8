package server

import "time"

// joinSession adds a player to the roster. Re-joining is a silent no-op so
// page reloads and flaky networks never error out.
func joinSession(g *Session, info PlayerInfo, now time.Time, fx *sideEffects) *Participant {
	if p := g.findParticipant(info.ID); p != nil {
		return p
	}
	g.Participants = append(g.Participants, Participant{
		PlayerID:    info.ID,
		DisplayName: info.DisplayName,
		PublicCode:  info.PublicCode,
		JoinedAt:    now,
		LastSeenAt:  now,
	})
	p := &g.Participants[len(g.Participants)-1]
	fx.touch(p)
	fx.record("participant_joined", p.PlayerID, EventPayload{})
	return p
}

type heartbeatResult struct {
	Ignored string
	Armed   bool
}

// heartbeat refreshes liveness and, when the client confirms working sensors,
// arms the participant. Arming is one-way; it never flips back. A heartbeat
// from a player who never joined is reported, not failed.
func heartbeat(g *Session, playerID uint, sensorOK bool, now time.Time, fx *sideEffects) heartbeatResult {
	p := g.findParticipant(playerID)
	if p == nil {
		return heartbeatResult{Ignored: "not a participant"}
	}
	p.LastSeenAt = now
	if sensorOK && !p.Armed {
		at := now
		p.Armed = true
		p.ArmedAt = &at
		fx.touch(p)
		fx.record("participant_armed", p.PlayerID, EventPayload{})
	}
	return heartbeatResult{Armed: p.Armed}
}

type motionResult struct {
	Ignored    bool
	Reason     string
	Armed      bool
	Eliminated bool
	ElimReason string
}

// submitMotion applies one telemetry tick. A score above the session cutoff
// eliminates; everything that no longer applies (round closed, not armed,
// already out) folds into an ignored result instead of an error.
func submitMotion(g *Session, playerID uint, score float64, now time.Time, fx *sideEffects) (motionResult, error) {
	p := g.findParticipant(playerID)
	if p == nil {
		return motionResult{}, notFound(codeNotParticipant, "player has not joined this session")
	}
	p.LastSeenAt = now
	if p.eliminated() {
		return motionResult{
			Ignored:    true,
			Reason:     "already eliminated",
			Armed:      p.Armed,
			Eliminated: true,
			ElimReason: p.EliminatedReason,
		}, nil
	}
	if g.State != stateActive {
		return motionResult{Ignored: true, Reason: "round not active", Armed: p.Armed}, nil
	}
	if !p.Armed {
		return motionResult{Ignored: true, Reason: "not armed", Armed: false}, nil
	}

	p.LastMotionScore = score
	if score > cutoff(g.SensitivityLevel) {
		outcome := eliminate(g, p, reasonMotion, &score, now, fx)
		if outcome.Applied {
			return motionResult{Armed: true, Eliminated: true, ElimReason: reasonMotion}, nil
		}
		return motionResult{
			Ignored:    true,
			Reason:     outcome.Ignored,
			Armed:      p.Armed,
			Eliminated: p.eliminated(),
			ElimReason: p.EliminatedReason,
		}, nil
	}
	return motionResult{Armed: true}, nil
}
