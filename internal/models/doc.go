// Package models defines the core domain models for CheckSplit.
//
// # Models
//
//   - FoodItem: a dish on the bill with a name and price
//   - Person: a participant with the food items assigned to them
//
// Both are plain value types. Assigning a food item to a person copies the
// item into the person's list, so a Person owns independent copies rather
// than references into the unassigned pool. The Ledger aggregate that owns
// collections of both lives in the ledger package.
//
// # Design Principles
//
//  1. Value semantics: copies everywhere, no shared mutable state
//  2. Derived totals are computed on demand, never cached
//  3. JSON tags match the receipt-parsing endpoint's response fields, so
//     ingest results decode straight into FoodItem
package models
