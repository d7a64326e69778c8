package server

import (
	"fmt"
	"time"
)

// startRound moves WAITING|REST to ACTIVE and rebases the round counters.
func startRound(g *Session, now time.Time, fx *sideEffects) error {
	if g.State != stateWaiting && g.State != stateRest {
		return stateConflict(codeInvalidState, fmt.Sprintf("cannot start a round from %s", g.State))
	}
	alive := g.aliveArmed()
	if alive < 2 {
		return stateConflict(codeNotEnoughPlayers, "need at least 2 alive players to start a round")
	}
	g.State = stateActive
	g.RoundNo++
	g.RoundAliveStart = alive
	g.RoundEliminatedCount = 0
	g.RestEndsAt = nil
	fx.record("round_started", 0, EventPayload{RoundNo: g.RoundNo, AliveStart: alive})
	fx.snapshotSession(g)
	return nil
}

// endRound applies the ACTIVE to REST transition. Callers validate state;
// the elimination orderer invokes it directly once the close target is met.
func endRound(g *Session, now time.Time, fx *sideEffects) {
	g.State = stateRest
	restEnd := now.Add(time.Duration(g.RestSeconds) * time.Second)
	g.RestEndsAt = &restEnd
	fx.record("round_ended", 0, EventPayload{
		RoundNo:    g.RoundNo,
		Eliminated: g.RoundEliminatedCount,
	})
}

// hostEndRound is the host-forced ACTIVE to REST transition.
func hostEndRound(g *Session, now time.Time, fx *sideEffects) error {
	if g.State != stateActive {
		return stateConflict(codeInvalidState, fmt.Sprintf("cannot end a round from %s", g.State))
	}
	endRound(g, now, fx)
	fx.snapshotSession(g)
	return nil
}

// finishGame is the host-forced terminal transition. It requires exactly one
// alive armed participant and runs the full position-based distribution.
func finishGame(g *Session, now time.Time, fx *sideEffects) error {
	if g.State == stateFinished {
		return stateConflict(codeInvalidState, "game already finished")
	}
	winner := g.soleSurvivor()
	if winner == nil {
		return stateConflict(codeInvalidWinnerCount, "need exactly 1 alive player to finish the game")
	}
	finishSession(g, winner, now, fx)
	distributePoints(g, winner, fx)
	fx.record("game_finished", winner.PlayerID, EventPayload{RoundNo: g.RoundNo, Winner: winner.DisplayName})
	fx.snapshotSession(g)
	return nil
}

// autoFinish is the simplified single-survivor path used by the reaper. It
// credits only the winner with the base points; the full distribution is
// reserved for the host-driven finish.
func autoFinish(g *Session, winner *Participant, now time.Time, fx *sideEffects) {
	finishSession(g, winner, now, fx)
	fx.award(award{
		PlayerID:  winner.PlayerID,
		SessionID: g.DBID,
		EventType: "REDLIGHT_WIN",
		Points:    g.BasePoints,
		Note:      fmt.Sprintf("red light: last survivor, round %d", g.RoundNo),
	})
	fx.record("game_finished", winner.PlayerID, EventPayload{
		RoundNo: g.RoundNo,
		Winner:  winner.DisplayName,
		Reason:  "auto",
	})
	fx.snapshotSession(g)
}

func finishSession(g *Session, winner *Participant, now time.Time, fx *sideEffects) {
	g.State = stateFinished
	g.IsActive = false
	g.RestEndsAt = nil
	g.WinnerPlayerID = winner.PlayerID
	g.WinnerName = winner.DisplayName
}
