package entity

import "time"

// Weekdays accepted in delivery schedules.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Delivery the days of the week on which a supplier delivers to a branch.
type Delivery struct {
	ID         string
	BranchID   string
	SupplierID string
	Days       []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
