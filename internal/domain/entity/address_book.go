package entity

import "time"

// DeliveryAddress an address saved by a branch for deliveries.
type DeliveryAddress struct {
	ID           string
	BranchID     string
	AddressLine1 string
	AddressLine2 string
	County       string
	Postcode     string
	TownCity     string
	CreatedAt    time.Time
}

// Card a payment card saved by a branch.
type Card struct {
	ID             string
	BranchID       string
	CardHolderName string
	CardNumber     string
	ExpiryDate     string // MM/YY
	CVV            string
	CreatedAt      time.Time
}

// MaskedNumber returns the card number with all but the last four digits hidden.
func (c *Card) MaskedNumber() string {
	n := len(c.CardNumber)
	if n <= 4 {
		return c.CardNumber
	}
	masked := make([]byte, n)
	for i := 0; i < n-4; i++ {
		masked[i] = '*'
	}
	copy(masked[n-4:], c.CardNumber[n-4:])
	return string(masked)
}

// Transaction result of a gateway charge tied to an order.
type Transaction struct {
	ID        string
	OrderID   string
	BranchID  string
	TnxID     string // gateway reference
	Amount    string
	Status    string
	CreatedAt time.Time
}
