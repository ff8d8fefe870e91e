package types

import (
	"fmt"
	"time"
)

// Default role for a cooperative member.
const DefaultMemberRole = "member"

// Membership links a farmer to a cooperative. The pair
// (CooperativeID, FarmerID) is its identity: at most one membership exists
// per farmer and cooperative.
type Membership struct {
	CooperativeID int64     `json:"cooperative_id"`
	FarmerID      int64     `json:"farmer_id"`
	JoinedOn      time.Time `json:"joined_on"`
	Role          string    `json:"role"`
	ApprovedBy    string    `json:"approved_by,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	LastUpdated   time.Time `json:"last_updated"`
}

// Key renders the composite identity as "cooperative/farmer".
func (m *Membership) Key() string {
	return fmt.Sprintf("%d/%d", m.CooperativeID, m.FarmerID)
}

// Validate fills the default role and checks both halves of the key.
func (m *Membership) Validate() error {
	if err := requireID("membership", "cooperative_id", m.CooperativeID); err != nil {
		return err
	}
	if err := requireID("membership", "farmer_id", m.FarmerID); err != nil {
		return err
	}
	trimText(&m.Role, &m.ApprovedBy, &m.Notes)
	if m.Role == "" {
		m.Role = DefaultMemberRole
	}
	return nil
}
