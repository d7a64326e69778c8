package server

import "fmt"

// statusMessage derives the one-line status a player's screen shows from the
// session state and their own standing.
func statusMessage(g *Session, p *Participant) string {
	if g.State == stateFinished {
		if g.WinnerName != "" {
			return fmt.Sprintf("game over, winner=%s", g.WinnerName)
		}
		return "game over"
	}
	if p != nil && p.eliminated() {
		switch p.EliminatedReason {
		case reasonSensorOffline:
			return "eliminated: sensors went offline"
		default:
			return "eliminated: you moved"
		}
	}
	switch g.State {
	case stateWaiting:
		return "waiting to start"
	case stateActive:
		if p == nil || !p.Armed {
			return "not ready"
		}
		return "in play"
	case stateRest:
		return "resting"
	}
	return ""
}

// playerStatusPayload is the poll response for one player: the session
// snapshot plus everything their screen needs without a follow-up request.
func playerStatusPayload(g *Session, p *Participant) map[string]any {
	payload := map[string]any{
		"session": sessionSummary(g),
		"message": statusMessage(g, p),
	}
	if p == nil {
		payload["me"] = nil
		return payload
	}
	me := map[string]any{
		"armed":  p.Armed,
		"status": "alive",
	}
	if p.eliminated() {
		me["status"] = "eliminated"
		me["eliminated_reason"] = p.EliminatedReason
		me["eliminated_round"] = p.EliminatedRound
	}
	payload["me"] = me
	return payload
}

func sessionSummary(g *Session) map[string]any {
	summary := map[string]any{
		"state":             g.State,
		"round_no":          g.RoundNo,
		"sensitivity_level": g.SensitivityLevel,
		"base_points":       g.BasePoints,
		"rest_seconds":      g.RestSeconds,
	}
	if g.RestEndsAt != nil {
		summary["rest_ends_at"] = g.RestEndsAt.UTC()
	}
	if g.State == stateFinished && g.WinnerName != "" {
		summary["winner_name"] = g.WinnerName
	}
	return summary
}
