package matchrequest

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusConfirmed Status = "confirmed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusConfirmed:
		return true
	default:
		return false
	}
}

// MatchRequest is a challenge sent from one team to another. Status moves
// only through explicit accept/reject/confirm calls, and any status may be
// overwritten by any other.
type MatchRequest struct {
	ID           string
	FromTeamID   string
	ToTeamID     string
	Status       Status
	ProposedTime *string
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (m MatchRequest) Validate() error {
	if strings.TrimSpace(m.FromTeamID) == "" {
		return fmt.Errorf("from team id is required")
	}
	if strings.TrimSpace(m.ToTeamID) == "" {
		return fmt.Errorf("to team id is required")
	}
	if !m.Status.Valid() {
		return fmt.Errorf("unknown match request status %q", m.Status)
	}
	return nil
}

// Involves reports whether teamID is the sender or the receiver.
func (m MatchRequest) Involves(teamID string) bool {
	return m.FromTeamID == teamID || m.ToTeamID == teamID
}

type ListFilter struct {
	TeamID string
	Limit  int
}
