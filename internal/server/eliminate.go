package server

import "time"

type elimOutcome struct {
	Applied     bool
	Ignored     string
	RoundClosed bool
	Order       int
}

// roundCloseTarget is the number of eliminations that ends a round: roughly
// half the entrants, floored, never less than one for a playable round. A
// round that started with fewer than two entrants has no target.
func roundCloseTarget(aliveStart int) int {
	if aliveStart < 2 {
		return 0
	}
	target := aliveStart / 2
	if target < 1 {
		target = 1
	}
	return target
}

// eliminate is the one primitive that writes a participant's elimination and
// the session's round counters together. Callers hold the store lock, which
// makes the rank assignment and the round-close decision linearized per
// session. Idempotent for an already-eliminated participant; a no-op outside
// ACTIVE (expected race between round closure and late telemetry).
func eliminate(g *Session, p *Participant, reason string, motionScore *float64, now time.Time, fx *sideEffects) elimOutcome {
	if p.eliminated() {
		return elimOutcome{Ignored: "already eliminated"}
	}
	if g.State != stateActive {
		return elimOutcome{Ignored: "round not active"}
	}

	order := g.maxEliminatedOrder() + 1
	at := now
	p.EliminatedAt = &at
	p.EliminatedOrder = order
	p.EliminatedRound = g.RoundNo
	p.EliminatedReason = reason
	if motionScore != nil {
		p.LastMotionScore = *motionScore
	}
	g.RoundEliminatedCount++

	fx.touch(p)
	fx.record("participant_eliminated", p.PlayerID, EventPayload{
		RoundNo:         g.RoundNo,
		Reason:          reason,
		EliminatedOrder: order,
	})

	outcome := elimOutcome{Applied: true, Order: order}
	target := roundCloseTarget(g.RoundAliveStart)
	if target > 0 && g.RoundEliminatedCount >= target {
		endRound(g, now, fx)
		outcome.RoundClosed = true
	}
	fx.snapshotSession(g)
	return outcome
}
