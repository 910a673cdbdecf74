package user

import "github.com/mstanvir/garment-track-backend/internal/access"

// User is an account record. Role and approval status are independent
// axes: a freshly registered account is a pending buyer, an admin may
// later change either.
type User struct {
	ID               int     `json:"userId"`
	Email            string  `json:"email"`
	Password         string  `json:"password,omitempty"`
	Name             string  `json:"name"`
	Role             string  `json:"role"`
	Status           string  `json:"status"`
	SuspensionReason *string `json:"suspensionReason,omitempty"`
	CreatedAt        string  `json:"createdAt,omitempty"`
	UpdatedAt        string  `json:"updatedAt,omitempty"`
}

func ValidRole(role string) bool {
	switch role {
	case access.RoleAdmin, access.RoleManager, access.RoleBuyer:
		return true
	}
	return false
}

func ValidStatus(status string) bool {
	switch status {
	case access.StatusPending, access.StatusApproved, access.StatusSuspended:
		return true
	}
	return false
}
