package server

import "time"

const (
	stateWaiting  = "WAITING"
	stateActive   = "ACTIVE"
	stateRest     = "REST"
	stateFinished = "FINISHED"
)

const (
	reasonMotion        = "MOTION"
	reasonSensorOffline = "SENSOR_OFFLINE"
)

// Session is the authoritative in-memory aggregate for one play-through.
// All mutation happens inside Store.Update so round counters and elimination
// ranks are linearized.
type Session struct {
	ID                   uint
	DBID                 uint
	IsActive             bool
	State                string
	RoundNo              int
	SensitivityLevel     int
	BasePoints           int
	RestSeconds          int
	RestEndsAt           *time.Time
	RoundAliveStart      int
	RoundEliminatedCount int
	WinnerPlayerID       uint
	WinnerName           string
	CreatedAt            time.Time
	Participants         []Participant
}

type Participant struct {
	DBID             uint
	PlayerID         uint
	DisplayName      string
	PublicCode       string
	JoinedAt         time.Time
	Armed            bool
	ArmedAt          *time.Time
	LastSeenAt       time.Time
	LastMotionScore  float64
	EliminatedAt     *time.Time
	EliminatedOrder  int
	EliminatedRound  int
	EliminatedReason string
}

func (p *Participant) eliminated() bool {
	return p.EliminatedAt != nil
}

func (g *Session) findParticipant(playerID uint) *Participant {
	for i := range g.Participants {
		if g.Participants[i].PlayerID == playerID {
			return &g.Participants[i]
		}
	}
	return nil
}

// aliveArmed counts participants still in play: sensors confirmed and not
// eliminated.
func (g *Session) aliveArmed() int {
	count := 0
	for i := range g.Participants {
		if g.Participants[i].Armed && !g.Participants[i].eliminated() {
			count++
		}
	}
	return count
}

func (g *Session) eliminatedCount() int {
	count := 0
	for i := range g.Participants {
		if g.Participants[i].eliminated() {
			count++
		}
	}
	return count
}

func (g *Session) notReadyCount() int {
	count := 0
	for i := range g.Participants {
		if !g.Participants[i].Armed && !g.Participants[i].eliminated() {
			count++
		}
	}
	return count
}

func (g *Session) maxEliminatedOrder() int {
	max := 0
	for i := range g.Participants {
		if g.Participants[i].eliminated() && g.Participants[i].EliminatedOrder > max {
			max = g.Participants[i].EliminatedOrder
		}
	}
	return max
}

// soleSurvivor returns the single armed, non-eliminated participant, or nil
// when there are zero or several.
func (g *Session) soleSurvivor() *Participant {
	var survivor *Participant
	for i := range g.Participants {
		if g.Participants[i].Armed && !g.Participants[i].eliminated() {
			if survivor != nil {
				return nil
			}
			survivor = &g.Participants[i]
		}
	}
	return survivor
}
