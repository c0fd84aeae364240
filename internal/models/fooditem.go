package models

import "github.com/google/uuid"

// FoodItem represents a single dish on the bill.
type FoodItem struct {
	// ID is the unique identifier for the item (UUID format).
	// It is generated at creation and never decoded from the wire.
	ID uuid.UUID `json:"id"`

	// Name is the dish name (e.g., "Pizza", "Tea").
	Name string `json:"name"`

	// Price is the price of the item.
	Price float64 `json:"price"`

	// Quantity is optionally reported by the receipt-parsing endpoint.
	// It is carried through but not used by any total calculation.
	Quantity *float64 `json:"quantity,omitempty"`
}

// Copy returns a duplicate of the item under a fresh identity.
// Assignment uses this so a person's list holds independent copies.
func (f FoodItem) Copy() FoodItem {
	dup := f
	dup.ID = uuid.New()
	if f.Quantity != nil {
		q := *f.Quantity
		dup.Quantity = &q
	}
	return dup
}
