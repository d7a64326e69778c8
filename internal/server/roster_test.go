package server

import (
	"testing"
	"time"
)

func TestJoinIdempotent(t *testing.T) {
	srv := newTestServer(t)
	resetTestSession(t, srv, 15, 10, 60)

	info := PlayerInfo{ID: 7, DisplayName: "Ada", PublicCode: "P0007"}
	err := srv.store.Update(func(g *Session) error {
		now := timeNowUTC()
		first := joinSession(g, info, now, &sideEffects{})
		at := now
		first.Armed = true
		first.ArmedAt = &at

		again := joinSession(g, info, now.Add(time.Second), &sideEffects{})
		if len(g.Participants) != 1 {
			t.Fatalf("expected 1 participant, got %d", len(g.Participants))
		}
		if again != g.findParticipant(7) {
			t.Fatal("re-join should return the existing participant")
		}
		if !again.Armed {
			t.Fatal("re-join must not reset armed state")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestHeartbeatArmsOneWay(t *testing.T) {
	srv := newTestServer(t)
	resetTestSession(t, srv, 15, 10, 60)

	err := srv.store.Update(func(g *Session) error {
		now := timeNowUTC()
		joinSession(g, PlayerInfo{ID: 1, DisplayName: "Ada"}, now, &sideEffects{})

		res := heartbeat(g, 1, false, now, &sideEffects{})
		if res.Armed {
			t.Fatal("heartbeat without sensor_ok must not arm")
		}

		res = heartbeat(g, 1, true, now, &sideEffects{})
		if !res.Armed {
			t.Fatal("heartbeat with sensor_ok should arm")
		}
		armedAt := g.findParticipant(1).ArmedAt

		res = heartbeat(g, 1, false, now.Add(time.Second), &sideEffects{})
		if !res.Armed {
			t.Fatal("arming is one-way; sensor_ok=false must not disarm")
		}
		if g.findParticipant(1).ArmedAt != armedAt {
			t.Fatal("armed_at must not be restamped")
		}
		if !g.findParticipant(1).LastSeenAt.After(now) {
			t.Fatal("heartbeat should always refresh last_seen_at")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestHeartbeatUnknownPlayerReported(t *testing.T) {
	srv := newTestServer(t)
	resetTestSession(t, srv, 15, 10, 60)

	err := srv.store.Update(func(g *Session) error {
		res := heartbeat(g, 42, true, timeNowUTC(), &sideEffects{})
		if res.Ignored == "" {
			t.Fatal("heartbeat from a player who never joined should be reported as ignored")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestSubmitMotionEliminatesAboveCutoff(t *testing.T) {
	srv := newTestServer(t)
	resetTestSession(t, srv, 40, 10, 60) // strictest level: cutoff 0.3
	addArmedPlayers(t, srv, 3)
	startTestRound(t, srv)

	err := srv.store.Update(func(g *Session) error {
		fx := &sideEffects{}
		res, err := submitMotion(g, 1, 0.2, timeNowUTC(), fx)
		if err != nil {
			t.Fatal(err)
		}
		if res.Eliminated {
			t.Fatal("score below cutoff must not eliminate")
		}
		if g.findParticipant(1).LastMotionScore != 0.2 {
			t.Fatal("last_motion_score should track the latest tick")
		}

		res, err = submitMotion(g, 1, 0.9, timeNowUTC(), fx)
		if err != nil {
			t.Fatal(err)
		}
		if !res.Eliminated || res.ElimReason != reasonMotion {
			t.Fatalf("expected MOTION elimination, got %+v", res)
		}

		// Late telemetry after elimination folds into an ignored success.
		res, err = submitMotion(g, 1, 5.0, timeNowUTC(), fx)
		if err != nil {
			t.Fatal(err)
		}
		if !res.Ignored || !res.Eliminated {
			t.Fatalf("expected ignored re-submission, got %+v", res)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestSubmitMotionIgnoredOutsideActive(t *testing.T) {
	srv := newTestServer(t)
	resetTestSession(t, srv, 15, 10, 60)
	addArmedPlayers(t, srv, 2)

	err := srv.store.Update(func(g *Session) error {
		res, err := submitMotion(g, 1, 9.9, timeNowUTC(), &sideEffects{})
		if err != nil {
			t.Fatal(err)
		}
		if !res.Ignored {
			t.Fatal("motion in WAITING should be ignored, not eliminate")
		}
		if g.findParticipant(1).eliminated() {
			t.Fatal("participant must not be eliminated outside ACTIVE")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
