package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin  = "admin"
	RoleBranch = "branch"
)

// StatusInactive marks an account that may not log in.
const StatusInactive = "inactive"

// Address postal address embedded in users and suppliers.
type Address struct {
	Street   string
	City     string
	Postcode string
}

// User an account of the system. Branches (shops) are users with RoleBranch.
type User struct {
	ID                  string
	Firstname           string
	Lastname            string
	Email               string // unique across users
	PasswordHash        string // bcrypt
	Role                string // admin, branch
	Address             Address
	PaymentMethod       string
	Status              string
	ResetTokenHash      string     // sha256 hex of the emailed reset token
	ResetTokenExpiresAt *time.Time // nil when no reset is pending
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsBranch reports whether the user is a shop account.
func (u *User) IsBranch() bool { return u.Role == RoleBranch }
