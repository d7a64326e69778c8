package server

// sideEffects collects what a locked mutation decided, so persistence, ledger
// appends, and host broadcasts can run after the store lock is released.
// Everything in here is a value copy; nothing aliases the live aggregate.
type sideEffects struct {
	session      *Session
	participants []Participant
	events       []eventRecord
	awards       []award
	changed      bool
}

type eventRecord struct {
	Type     string
	PlayerID uint
	Payload  EventPayload
}

type award struct {
	PlayerID  uint
	SessionID uint
	EventType string
	Points    int
	Note      string
}

func (fx *sideEffects) touch(p *Participant) {
	if fx == nil || p == nil {
		return
	}
	fx.participants = append(fx.participants, *p)
	fx.changed = true
}

func (fx *sideEffects) snapshotSession(g *Session) {
	if fx == nil {
		return
	}
	copy := *g
	copy.Participants = nil
	fx.session = &copy
	fx.changed = true
}

func (fx *sideEffects) record(eventType string, playerID uint, payload EventPayload) {
	if fx == nil {
		return
	}
	fx.events = append(fx.events, eventRecord{Type: eventType, PlayerID: playerID, Payload: payload})
}

func (fx *sideEffects) award(a award) {
	if fx == nil {
		return
	}
	fx.awards = append(fx.awards, a)
}
