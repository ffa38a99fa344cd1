package models

import "time"

// AdminRole is the permission level of a back office account
type AdminRole string

// AdminRole constants
const (
	AdminRoleSuperAdmin AdminRole = "superadmin"
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleStaff      AdminRole = "staff"
)

// Admin represents a back office account
type Admin struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      AdminRole `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateAdminRequest represents the admin creation form
type CreateAdminRequest struct {
	Username string    `json:"username" binding:"required,min=3,max=50,alphanum"`
	Password string    `json:"password" binding:"required,min=6"`
	FullName string    `json:"fullName" binding:"required"`
	Email    string    `json:"email" binding:"required,email"`
	Role     AdminRole `json:"role" binding:"required,oneof=superadmin admin staff"`
}

// UpdateAdminRequest represents the admin edit form
type UpdateAdminRequest struct {
	FullName string    `json:"fullName" binding:"required"`
	Email    string    `json:"email" binding:"required,email"`
	Role     AdminRole `json:"role" binding:"required,oneof=superadmin admin staff"`
	IsActive bool      `json:"isActive"`
}
