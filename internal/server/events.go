package server

// EventPayload is the jsonb body of a game-event audit row.
type EventPayload struct {
	RoundNo          int    `json:"round_no,omitempty"`
	AliveStart       int    `json:"alive_start,omitempty"`
	Eliminated       int    `json:"eliminated,omitempty"`
	EliminatedOrder  int    `json:"eliminated_order,omitempty"`
	Reason           string `json:"reason,omitempty"`
	Winner           string `json:"winner,omitempty"`
	SensitivityLevel int    `json:"sensitivity_level,omitempty"`
	BasePoints       int    `json:"base_points,omitempty"`
	RestSeconds      int    `json:"rest_seconds,omitempty"`
}
