package types

// ProductType classifies what was sold. Sales reference a product type but
// are not owned by it.
type ProductType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	TypicalUnit string `json:"typical_unit,omitempty"`
	Description string `json:"description,omitempty"`
}

func (p *ProductType) Validate() error {
	if err := requireText("product type", "name", &p.Name); err != nil {
		return err
	}
	trimText(&p.Category, &p.TypicalUnit, &p.Description)
	return nil
}
