package types

// Cooperative groups farmers through Memberships, which it owns.
type Cooperative struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"` // Required, unique.
	Description string `json:"description,omitempty"`
}

func (c *Cooperative) Validate() error {
	if err := requireText("cooperative", "name", &c.Name); err != nil {
		return err
	}
	trimText(&c.Description)
	return nil
}
