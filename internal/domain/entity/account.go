package entity

import (
	"fmt"
	"time"

	errs "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
)

// Role is a member's role inside its workspace
type Role string

// Member roles
const (
	RoleEmployee   Role = "employee"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// IsValidRole checks if the role is one of the supported roles
func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleEmployee, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Account is a workspace member together with its two karma balances
type Account struct {
	ID                int64     // Snowflake id of the member profile
	WorkspaceID       int64     // Workspace the member belongs to
	DisplayName       string    // Name shown on the leaderboard and ledger
	Email             string    // Contact address, informational only
	Role              Role      // employee, admin or super_admin
	Department        string    // Optional department name
	GivingBalance     int64     // Karma the member can still send
	RedeemableBalance int64     // Karma the member has received
	Active            bool      // False once the member has been removed
	CreatedAt         time.Time // When the member joined
	UpdatedAt         time.Time // Last balance or profile change
}

// NewAccount creates an active member account
func NewAccount(
	id, workspaceID int64,
	displayName, email string,
	role Role,
	department string,
	givingBalance int64,
	timeProvider coreport.TimeProvider,
) (*Account, error) {
	if id <= 0 || workspaceID <= 0 {
		return nil, fmt.Errorf("%w: account and workspace ids must be positive", errs.ErrInvalidRequest)
	}
	if !IsValidRole(string(role)) {
		return nil, fmt.Errorf("%w: unknown role %q", errs.ErrInvalidRequest, role)
	}
	if givingBalance < 0 {
		return nil, fmt.Errorf("%w: giving balance cannot be negative", errs.ErrInvalidRequest)
	}

	now := timeProvider.Now().UTC()
	return &Account{
		ID:            id,
		WorkspaceID:   workspaceID,
		DisplayName:   displayName,
		Email:         email,
		Role:          role,
		Department:    department,
		GivingBalance: givingBalance,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsAdmin reports whether the member administers its workspace
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
}

// IsSuperAdmin reports whether the member is a platform level administrator
func (a *Account) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

// CanResetWorkspace reports whether the member may trigger a manual reset of workspaceID.
// Super admins may reset any workspace.
func (a *Account) CanResetWorkspace(workspaceID int64) bool {
	if !a.Active {
		return false
	}
	if a.IsSuperAdmin() {
		return true
	}
	return a.Role == RoleAdmin && a.WorkspaceID == workspaceID
}

// CanSend checks if the giving balance covers amount
func (a *Account) CanSend(amount int64) bool {
	return amount > 0 && a.GivingBalance >= amount
}
