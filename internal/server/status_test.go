package server

import "testing"

func TestStatusMessages(t *testing.T) {
	now := timeNowUTC()
	armed := Participant{PlayerID: 1, Armed: true}
	unarmed := Participant{PlayerID: 2}
	eliminatedMotion := Participant{PlayerID: 3, Armed: true, EliminatedAt: &now, EliminatedOrder: 1, EliminatedReason: reasonMotion}
	eliminatedOffline := Participant{PlayerID: 4, Armed: true, EliminatedAt: &now, EliminatedOrder: 2, EliminatedReason: reasonSensorOffline}

	cases := []struct {
		name    string
		state   string
		winner  string
		p       *Participant
		message string
	}{
		{name: "waiting", state: stateWaiting, p: &armed, message: "waiting to start"},
		{name: "active unarmed", state: stateActive, p: &unarmed, message: "not ready"},
		{name: "active armed alive", state: stateActive, p: &armed, message: "in play"},
		{name: "eliminated motion", state: stateActive, p: &eliminatedMotion, message: "eliminated: you moved"},
		{name: "eliminated offline", state: stateRest, p: &eliminatedOffline, message: "eliminated: sensors went offline"},
		{name: "rest", state: stateRest, p: &armed, message: "resting"},
		{name: "finished", state: stateFinished, winner: "Ada", p: &eliminatedMotion, message: "game over, winner=Ada"},
		{name: "non participant", state: stateWaiting, p: nil, message: "waiting to start"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := &Session{State: tc.state, WinnerName: tc.winner}
			if got := statusMessage(g, tc.p); got != tc.message {
				t.Fatalf("statusMessage(%s) = %q, want %q", tc.state, got, tc.message)
			}
		})
	}
}

func TestHostStateCounts(t *testing.T) {
	srv := newTestServer(t)
	resetTestSession(t, srv, 15, 10, 60)
	addArmedPlayers(t, srv, 4)

	err := srv.store.Update(func(g *Session) error {
		joinSession(g, PlayerInfo{ID: 9, DisplayName: "late"}, timeNowUTC(), &sideEffects{})
		if err := startRound(g, timeNowUTC(), &sideEffects{}); err != nil {
			return err
		}
		eliminate(g, g.findParticipant(1), reasonMotion, nil, timeNowUTC(), &sideEffects{})

		state := hostState(g)
		totals := state["totals"].(map[string]any)
		if totals["total"].(int) != 5 {
			t.Fatalf("total = %v, want 5", totals["total"])
		}
		if totals["alive"].(int) != 3 {
			t.Fatalf("alive = %v, want 3", totals["alive"])
		}
		if totals["eliminated"].(int) != 1 {
			t.Fatalf("eliminated = %v, want 1", totals["eliminated"])
		}
		if totals["not_ready"].(int) != 1 {
			t.Fatalf("not_ready = %v, want 1", totals["not_ready"])
		}
		eliminatedThisRound := state["eliminated_this_round"].([]map[string]any)
		if len(eliminatedThisRound) != 1 || eliminatedThisRound[0]["player_id"].(uint) != 1 {
			t.Fatalf("unexpected eliminated_this_round: %v", eliminatedThisRound)
		}
		survivors := state["survivors"].([]map[string]any)
		if len(survivors) != 3 {
			t.Fatalf("expected 3 survivors, got %d", len(survivors))
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestParticipantLabels(t *testing.T) {
	now := timeNowUTC()
	cases := []struct {
		p    Participant
		want string
	}{
		{p: Participant{}, want: "not ready"},
		{p: Participant{Armed: true}, want: "alive"},
		{p: Participant{Armed: true, EliminatedAt: &now, EliminatedReason: reasonMotion}, want: "eliminated (MOTION)"},
		{p: Participant{Armed: true, EliminatedAt: &now, EliminatedReason: reasonSensorOffline}, want: "eliminated (OFFLINE)"},
	}
	for _, tc := range cases {
		if got := participantLabel(&tc.p); got != tc.want {
			t.Errorf("participantLabel(%+v) = %q, want %q", tc.p, got, tc.want)
		}
	}
}
