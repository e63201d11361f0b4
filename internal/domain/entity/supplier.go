package entity

import "time"

// Supplier a vendor whose products are sold to branches.
type Supplier struct {
	ID        string
	Icon      string // public URL of the uploaded icon, empty if none
	Name      string
	Email     string // unique across suppliers
	Phone     string // E.164 when it could be parsed
	Address   Address
	HolidayID string // empty when the supplier has no holiday calendar
	Holidays  *Holiday
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Holiday calendar of dates on which a supplier does not deliver.
type Holiday struct {
	ID        string
	Dates     []time.Time
	CreatedAt time.Time
}

// Contains reports whether day (compared by calendar date) is a holiday.
func (h *Holiday) Contains(day time.Time) bool {
	if h == nil {
		return false
	}
	y, m, d := day.Date()
	for _, hd := range h.Dates {
		hy, hm, hdd := hd.Date()
		if hy == y && hm == m && hdd == d {
			return true
		}
	}
	return false
}
