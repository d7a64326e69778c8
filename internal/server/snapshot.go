package server

// hostState builds the host console view: session summary, aggregate counts,
// the full roster with per-participant standing, plus the round's eliminated
// and surviving lists the stage display shows between rounds.
func hostState(g *Session) map[string]any {
	totals := map[string]any{
		"total":      len(g.Participants),
		"alive":      g.aliveArmed(),
		"eliminated": g.eliminatedCount(),
		"not_ready":  g.notReadyCount(),
	}

	participants := make([]map[string]any, 0, len(g.Participants))
	eliminatedThisRound := make([]map[string]any, 0)
	survivors := make([]map[string]any, 0)
	for i := range g.Participants {
		p := &g.Participants[i]
		entry := map[string]any{
			"player_id":    p.PlayerID,
			"display_name": p.DisplayName,
			"public_code":  p.PublicCode,
			"armed":        p.Armed,
			"label":        participantLabel(p),
		}
		if p.eliminated() {
			entry["eliminated_at"] = p.EliminatedAt.UTC()
			entry["eliminated_order"] = p.EliminatedOrder
			entry["eliminated_round"] = p.EliminatedRound
			entry["eliminated_reason"] = p.EliminatedReason
			if p.EliminatedRound == g.RoundNo {
				eliminatedThisRound = append(eliminatedThisRound, entry)
			}
		} else if p.Armed {
			survivors = append(survivors, entry)
		}
		participants = append(participants, entry)
	}

	session := sessionSummary(g)
	session["round_alive_start"] = g.RoundAliveStart
	session["round_eliminated_count"] = g.RoundEliminatedCount
	session["is_active"] = g.IsActive

	return map[string]any{
		"session":               session,
		"totals":                totals,
		"participants":          participants,
		"eliminated_this_round": eliminatedThisRound,
		"survivors":             survivors,
	}
}

func participantLabel(p *Participant) string {
	if !p.Armed && !p.eliminated() {
		return "not ready"
	}
	if !p.eliminated() {
		return "alive"
	}
	if p.EliminatedReason == reasonSensorOffline {
		return "eliminated (OFFLINE)"
	}
	return "eliminated (MOTION)"
}
