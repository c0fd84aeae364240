// Package ledger implements the bill ledger: the people splitting the
// bill, the pool of unassigned food items, and the settings applied to
// every total (service percentage, payee phone number).
//
// All mutations are synchronous and guarded by a mutex so the ledger can
// sit behind a concurrent HTTP surface. Derived totals are recomputed on
// every read, never cached.
//
// Two behaviors are deliberate and must not be "fixed":
//
//   - Assignment copies an item into a person's list and leaves the
//     source in the unassigned pool, so the same dish can be portioned
//     to several people. Repeated assignment appends repeated copies.
//   - Mutations that reference an unknown person or item id resolve as
//     silent no-ops, not errors.
package ledger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mkhusainov/checksplit/internal/models"
)

const (
	// DefaultPercentage is the service charge applied until changed.
	DefaultPercentage = 10.0

	// DefaultPhoneNumber is the placeholder payee account until changed.
	DefaultPhoneNumber = "903020101"
)

// Ledger owns the people, the unassigned food item pool, and the global
// bill settings. The zero value is not usable; construct with New.
type Ledger struct {
	mu          sync.Mutex
	people      []models.Person
	foodItems   []models.FoodItem
	percentage  float64
	phoneNumber string
}

// Snapshot is a consistent copy of the ledger state, safe to read and
// render without holding the ledger lock.
type Snapshot struct {
	People      []models.Person
	FoodItems   []models.FoodItem
	Percentage  float64
	PhoneNumber string
}

// New creates an empty ledger with default settings.
func New() *Ledger {
	return &Ledger{
		percentage:  DefaultPercentage,
		phoneNumber: DefaultPhoneNumber,
	}
}

// AddPerson appends a new person with an empty item list.
// It returns a *ValidationError when the name is a single character or
// shorter, or when another person already has the name
// (case-insensitively).
func (l *Ledger) AddPerson(name string) (models.Person, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len([]rune(name)) <= 1 {
		return models.Person{}, &ValidationError{Reason: "name must be longer than one character"}
	}
	for _, p := range l.people {
		if strings.EqualFold(p.Name, name) {
			return models.Person{}, &ValidationError{Reason: fmt.Sprintf("a person named %q already exists", p.Name)}
		}
	}

	person := models.Person{ID: uuid.New(), Name: name, Items: []models.FoodItem{}}
	l.people = append(l.people, person)
	return person.Copy(), nil
}

// AddFoodItem appends a new item to the unassigned pool.
// It returns a *ValidationError when the price is not positive, the name
// is a single character or shorter, or another unassigned item already
// has the name (case-insensitively).
func (l *Ledger) AddFoodItem(name string, price float64) (models.FoodItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if price <= 0 || len([]rune(name)) <= 1 {
		return models.FoodItem{}, &ValidationError{Reason: "invalid food item name or price"}
	}
	for _, item := range l.foodItems {
		if strings.EqualFold(item.Name, name) {
			return models.FoodItem{}, &ValidationError{Reason: fmt.Sprintf("a food item named %q already exists", item.Name)}
		}
	}

	item := models.FoodItem{ID: uuid.New(), Name: name, Price: price}
	l.foodItems = append(l.foodItems, item)
	return item, nil
}

// AddFoodItems appends parsed receipt items to the unassigned pool in
// order, assigning each a fresh identity. Items from the parsing
// endpoint bypass name/price validation, matching how manually reviewed
// receipt results are accepted as-is.
func (l *Ledger) AddFoodItems(items []models.FoodItem) []models.FoodItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	added := make([]models.FoodItem, 0, len(items))
	for _, item := range items {
		item.ID = uuid.New()
		l.foodItems = append(l.foodItems, item)
		added = append(added, item)
	}
	return added
}

// UpdateFoodItem edits an unassigned item in place. Copies already
// assigned to people keep their old values. Unknown ids are a no-op.
func (l *Ledger) UpdateFoodItem(itemID uuid.UUID, name string, price float64, quantity *float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.foodItems {
		if l.foodItems[i].ID == itemID {
			l.foodItems[i].Name = name
			l.foodItems[i].Price = price
			l.foodItems[i].Quantity = quantity
			return
		}
	}
}

// AssignFoodItem appends a copy of the unassigned item to the person's
// list. The source item stays in the pool, and nothing prevents
// assigning the same item to the same person again: each call appends
// another copy. Unknown ids on either side are a no-op.
func (l *Ledger) AssignFoodItem(itemID, personID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.assignLocked(itemID, personID)
}

// AssignSelection assigns every selected food item to every selected
// person and reports how many assignments were performed. The selection
// sets are transient caller state; iteration follows ledger insertion
// order on both sides so a single call is deterministic.
func (l *Ledger) AssignSelection(personIDs, itemIDs []uuid.UUID) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	selectedPeople := make(map[uuid.UUID]bool, len(personIDs))
	for _, id := range personIDs {
		selectedPeople[id] = true
	}
	selectedItems := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		selectedItems[id] = true
	}

	var assigned int
	for _, person := range l.people {
		if !selectedPeople[person.ID] {
			continue
		}
		for _, item := range l.foodItems {
			if !selectedItems[item.ID] {
				continue
			}
			if l.assignLocked(item.ID, person.ID) {
				assigned++
			}
		}
	}
	return assigned
}

func (l *Ledger) assignLocked(itemID, personID uuid.UUID) bool {
	itemIdx := -1
	for i := range l.foodItems {
		if l.foodItems[i].ID == itemID {
			itemIdx = i
			break
		}
	}
	if itemIdx < 0 {
		return false
	}
	for i := range l.people {
		if l.people[i].ID == personID {
			l.people[i].Items = append(l.people[i].Items, l.foodItems[itemIdx].Copy())
			return true
		}
	}
	return false
}

// DeleteFoodItem removes the item from the unassigned pool. Copies
// already assigned to people are untouched. Unknown ids are a no-op.
func (l *Ledger) DeleteFoodItem(itemID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.foodItems {
		if l.foodItems[i].ID == itemID {
			l.foodItems = append(l.foodItems[:i], l.foodItems[i+1:]...)
			return
		}
	}
}

// DeleteFoodItemFromPerson removes the first matching item from the
// person's assigned list only; the unassigned pool is untouched.
// Unknown ids on either side are a no-op.
func (l *Ledger) DeleteFoodItemFromPerson(itemID, personID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.people {
		if l.people[i].ID != personID {
			continue
		}
		items := l.people[i].Items
		for j := range items {
			if items[j].ID == itemID {
				l.people[i].Items = append(items[:j], items[j+1:]...)
				return
			}
		}
		return
	}
}

// DeletePerson removes the person and, with them, every item assigned
// to them. Unknown ids are a no-op.
func (l *Ledger) DeletePerson(personID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.people {
		if l.people[i].ID == personID {
			l.people = append(l.people[:i], l.people[i+1:]...)
			return
		}
	}
}

// FindPerson looks up a person by id, returning a copy and whether the
// person exists.
func (l *Ledger) FindPerson(personID uuid.UUID) (models.Person, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.people {
		if p.ID == personID {
			return p.Copy(), true
		}
	}
	return models.Person{}, false
}

// People returns a copy of the people list in insertion order.
func (l *Ledger) People() []models.Person {
	l.mu.Lock()
	defer l.mu.Unlock()

	return copyPeople(l.people)
}

// FoodItems returns a copy of the unassigned pool in insertion order.
func (l *Ledger) FoodItems() []models.FoodItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]models.FoodItem, len(l.foodItems))
	copy(items, l.foodItems)
	return items
}

// TotalAmount is the sum of every person's total. Items still in the
// unassigned pool do not count toward it.
func (l *Ledger) TotalAmount() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total float64
	for _, p := range l.people {
		total += p.TotalAmount()
	}
	return total
}

// TotalAmountWithPercentage is the sum of every person's
// percentage-adjusted total at the current service percentage.
func (l *Ledger) TotalAmountWithPercentage() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total float64
	for _, p := range l.people {
		total += p.TotalAmountWithPercentage(l.percentage)
	}
	return total
}

// Percentage returns the current service percentage.
func (l *Ledger) Percentage() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.percentage
}

// SetPercentage replaces the service percentage. Any value is accepted,
// including zero and negative markups.
func (l *Ledger) SetPercentage(p float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.percentage = p
}

// PhoneNumber returns the payee account used in payment links.
func (l *Ledger) PhoneNumber() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phoneNumber
}

// SetPhoneNumber replaces the payee account used in payment links.
func (l *Ledger) SetPhoneNumber(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.phoneNumber = s
}

// Snapshot returns a deep copy of the full ledger state taken under the
// lock. Receipt rendering consumes snapshots so the text is consistent
// even while mutations continue.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]models.FoodItem, len(l.foodItems))
	copy(items, l.foodItems)
	return Snapshot{
		People:      copyPeople(l.people),
		FoodItems:   items,
		Percentage:  l.percentage,
		PhoneNumber: l.phoneNumber,
	}
}

// TotalAmount is the sum of every person's total in the snapshot.
func (s Snapshot) TotalAmount() float64 {
	var total float64
	for _, p := range s.People {
		total += p.TotalAmount()
	}
	return total
}

// TotalAmountWithPercentage is the sum of every person's
// percentage-adjusted total in the snapshot.
func (s Snapshot) TotalAmountWithPercentage() float64 {
	var total float64
	for _, p := range s.People {
		total += p.TotalAmountWithPercentage(s.Percentage)
	}
	return total
}

func copyPeople(people []models.Person) []models.Person {
	out := make([]models.Person, len(people))
	for i, p := range people {
		out[i] = p.Copy()
	}
	return out
}
