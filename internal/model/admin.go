package model

import (
	"github.com/google/uuid"
)

type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "SuperAdmin"
	AdminRoleModerator  AdminRole = "Moderator"
)

// Recognized reports whether the role grants administrative access.
func (r AdminRole) Recognized() bool {
	return r == AdminRoleSuperAdmin || r == AdminRoleModerator
}

type Admin struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         AdminRole `db:"role" json:"role"`
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
