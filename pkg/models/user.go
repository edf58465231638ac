package models

import "time"

type Role string

const (
	RoleClient Role = "client"
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

func (r Role) Known() bool {
	switch r {
	case RoleClient, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// AccountStatus is the approval lifecycle shared by user accounts and
// driver profiles: pending until an admin moves it.
type AccountStatus string

const (
	StatusPending   AccountStatus = "pending"
	StatusApproved  AccountStatus = "approved"
	StatusRejected  AccountStatus = "rejected"
	StatusSuspended AccountStatus = "suspended"
)

func (s AccountStatus) Known() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusSuspended:
		return true
	}
	return false
}

type User struct {
	ID                    int64         `json:"id"`
	Email                 string        `json:"email"`
	Role                  Role          `json:"role"`
	CompanyName           *string       `json:"company_name"`
	Address               *string       `json:"address"`
	PhoneNumber           *string       `json:"phone_number"`
	CompanyRepresentative *string       `json:"company_representative"`
	EmergencyPhone        *string       `json:"emergency_phone"`
	IsVerified            string        `json:"is_verified"`
	AccountStatus         AccountStatus `json:"account_status"`
	ApprovalNotes         *string       `json:"approval_notes"`
	CreatedAt             time.Time     `json:"created_at"`
}

// SignupRequest mirrors the backend's /signup payload.
type SignupRequest struct {
	Email                 string `json:"email"`
	Password              string `json:"password"`
	Role                  Role   `json:"role"`
	CompanyName           string `json:"company_name,omitempty"`
	Address               string `json:"address,omitempty"`
	PhoneNumber           string `json:"phone_number,omitempty"`
	CompanyRepresentative string `json:"company_representative,omitempty"`
	EmergencyPhone        string `json:"emergency_phone,omitempty"`
}

// ApprovalUpdate is the admin approve/reject/suspend payload, for both
// user accounts and driver profiles.
type ApprovalUpdate struct {
	Status AccountStatus `json:"status"`
	Notes  *string       `json:"notes"`
}

// UserUpdate carries the admin-editable account fields; unset fields
// are left untouched by the backend.
type UserUpdate struct {
	Role          *Role          `json:"role,omitempty"`
	AccountStatus *AccountStatus `json:"account_status,omitempty"`
	CompanyName   *string        `json:"company_name,omitempty"`
	PhoneNumber   *string        `json:"phone_number,omitempty"`
	Address       *string        `json:"address,omitempty"`
}
