package types

import "time"

// Default role for a farmer taking part in an activity.
const DefaultParticipantRole = "participant"

// FarmerActivity links a farmer to an activity with progress tracking.
// Identity is the surrogate ID; the same pair may be linked more than once.
type FarmerActivity struct {
	ID              int64     `json:"id"`
	FarmerID        int64     `json:"farmer_id"`
	ActivityID      int64     `json:"activity_id"`
	JoinedOn        time.Time `json:"joined_on"`
	Role            string    `json:"role"`
	ProgressPercent float64   `json:"progress_percent"`
	Notes           string    `json:"notes,omitempty"`
	LastUpdated     time.Time `json:"last_updated"` // Refreshed on every write.
}

// Validate fills the default role and checks references and progress.
func (fa *FarmerActivity) Validate() error {
	if err := requireID("farmer activity", "farmer_id", fa.FarmerID); err != nil {
		return err
	}
	if err := requireID("farmer activity", "activity_id", fa.ActivityID); err != nil {
		return err
	}
	trimText(&fa.Role, &fa.Notes)
	if fa.Role == "" {
		fa.Role = DefaultParticipantRole
	}
	return CheckProgress(fa.ProgressPercent)
}
