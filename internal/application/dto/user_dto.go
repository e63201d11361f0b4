package dto

import "time"

// RegisterRequest self-registration input.
type RegisterRequest struct {
	Firstname string `json:"firstname" validate:"required,max=100"`
	Lastname  string `json:"lastname" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"omitempty,oneof=admin branch"`
}

// LoginRequest credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse a user without secrets.
type UserResponse struct {
	ID            string     `json:"id"`
	Firstname     string     `json:"firstname"`
	Lastname      string     `json:"lastname"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	Address       AddressDTO `json:"address"`
	PaymentMethod string     `json:"paymentMethod"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// UserSummary compact user reference embedded in other resources.
type UserSummary struct {
	ID            string     `json:"id"`
	Firstname     string     `json:"firstname"`
	Lastname      string     `json:"lastname"`
	Email         string     `json:"email"`
	Address       AddressDTO `json:"address"`
	PaymentMethod string     `json:"paymentMethod"`
}

// AuthResponse token plus the authenticated user.
type AuthResponse struct {
	Status bool         `json:"status"`
	Token  string       `json:"token"`
	User   UserResponse `json:"user"`
}

// VerifyResponse result of token verification.
type VerifyResponse struct {
	Message string       `json:"message"`
	User    IdentityInfo `json:"user"`
}

// IdentityInfo claims carried in a token.
type IdentityInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ForgotPasswordRequest input of the reset request.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest new password set through a reset token.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateProfileRequest admin profile update.
type UpdateProfileRequest struct {
	Firstname string `json:"firstname" validate:"required,max=100"`
	Lastname  string `json:"lastname" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"required,email"`
}

// UpdatePasswordRequest password change with the current password as proof.
type UpdatePasswordRequest struct {
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ProfileResponse updated user plus a token carrying the new identity.
type ProfileResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// CreateBranchRequest admin input to create a shop account.
type CreateBranchRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	Role          string `json:"role" validate:"omitempty,oneof=admin branch"`
	PaymentMethod string `json:"paymentMethod"`
	Status        string `json:"status"`
}

// UpdateBranchRequest admin input to update a shop account. ID travels in the body.
type UpdateBranchRequest struct {
	ID            string `json:"id" validate:"required"`
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email" validate:"required,email"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	Role          string `json:"role" validate:"omitempty,oneof=admin branch"`
	PaymentMethod string `json:"paymentMethod"`
	Status        string `json:"status"`
}
