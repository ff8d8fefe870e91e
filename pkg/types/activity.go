package types

import "time"

// Activity is a farming program. It owns the farmers registered under it and
// is linked to further farmers through FarmerActivity.
type Activity struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"` // Required, unique.
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// Validate trims text fields and checks that the name is present and that
// the program does not end before it starts.
func (a *Activity) Validate() error {
	if err := requireText("activity", "name", &a.Name); err != nil {
		return err
	}
	trimText(&a.Description)
	if a.StartDate != nil && a.EndDate != nil && a.EndDate.Before(*a.StartDate) {
		return &ValidationError{Entity: "activity", Field: "end_date", Reason: "must not be before start_date"}
	}
	return nil
}
