package models

import "github.com/google/uuid"

// Person represents one participant splitting the bill.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID uuid.UUID `json:"id"`

	// Name is the display name of the person.
	Name string `json:"name"`

	// Items are the food items assigned to this person, in assignment
	// order. Each entry is an independent copy of a pool item.
	Items []FoodItem `json:"items"`
}

// TotalAmount is the sum of the person's assigned item prices.
func (p Person) TotalAmount() float64 {
	var total float64
	for _, item := range p.Items {
		total += item.Price
	}
	return total
}

// TotalAmountWithPercentage applies the service percentage to the
// person's total: total × (1 + percentage/100).
func (p Person) TotalAmountWithPercentage(percentage float64) float64 {
	total := p.TotalAmount()
	return total + total*percentage/100
}

// Copy returns a deep copy of the person; mutating the copy's item list
// does not affect the original.
func (p Person) Copy() Person {
	dup := p
	dup.Items = make([]FoodItem, len(p.Items))
	copy(dup.Items, p.Items)
	return dup
}
