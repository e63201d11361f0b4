package entity

import "time"

// Category groups products in the catalog.
type Category struct {
	ID        string
	Name      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
