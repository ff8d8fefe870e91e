package types

import "time"

// Sale records produce sold by a farmer to a buyer.
type Sale struct {
	ID            int64     `json:"id"`
	FarmerID      int64     `json:"farmer_id"`
	BuyerID       int64     `json:"buyer_id"`
	ProductTypeID *int64    `json:"product_type_id,omitempty"` // Nulled when the product type is deleted.
	Quantity      float64   `json:"quantity"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"created_at"` // Calendar date; defaults to today.
}

// Validate checks the required references and the numeric fields. Whether
// the referenced rows exist is checked by the backend.
func (s *Sale) Validate() error {
	if err := requireID("sale", "farmer_id", s.FarmerID); err != nil {
		return err
	}
	if err := requireID("sale", "buyer_id", s.BuyerID); err != nil {
		return err
	}
	if s.ProductTypeID != nil {
		if err := requireID("sale", "product_type_id", *s.ProductTypeID); err != nil {
			return err
		}
	}
	if err := checkAmount("sale", "quantity", s.Quantity); err != nil {
		return err
	}
	return checkAmount("sale", "price", s.Price)
}

// Total returns quantity times price.
func (s *Sale) Total() float64 {
	return s.Quantity * s.Price
}
