package types

// Buyer purchases produce from farmers and owns the resulting Sales.
type Buyer struct {
	ID                     int64  `json:"id"`
	Name                   string `json:"name"`
	Organization           string `json:"organization,omitempty"`
	ContactPhone           string `json:"contact_phone,omitempty"`
	ContactEmail           string `json:"contact_email,omitempty"`
	Address                string `json:"address,omitempty"`
	PreferredPaymentMethod string `json:"preferred_payment_method,omitempty"`
}

// Validate trims text fields and checks the required name.
func (b *Buyer) Validate() error {
	if err := requireText("buyer", "name", &b.Name); err != nil {
		return err
	}
	trimText(&b.Organization, &b.ContactPhone, &b.ContactEmail, &b.Address, &b.PreferredPaymentMethod)
	return nil
}
