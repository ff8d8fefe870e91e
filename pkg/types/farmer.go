package types

import "time"

// Farmer is a registered producer. A farmer optionally belongs to one
// Activity and owns its Sales.
type Farmer struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"` // Required.
	FarmName         string    `json:"farm_name,omitempty"`
	NationalID       string    `json:"national_id"` // Required, unique.
	Phone            string    `json:"phone,omitempty"`
	Email            string    `json:"email,omitempty"`
	Address          string    `json:"address,omitempty"`
	ActivityID       *int64    `json:"activity_id,omitempty"`
	RegistrationDate time.Time `json:"registration_date"` // Defaults to the creation date.
}

// Validate trims text fields and checks the required name and national ID.
func (f *Farmer) Validate() error {
	if err := requireText("farmer", "name", &f.Name); err != nil {
		return err
	}
	if err := requireText("farmer", "national_id", &f.NationalID); err != nil {
		return err
	}
	trimText(&f.FarmName, &f.Phone, &f.Email, &f.Address)
	if f.ActivityID != nil {
		return requireID("farmer", "activity_id", *f.ActivityID)
	}
	return nil
}
