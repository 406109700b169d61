package entity

import (
	"database/sql"
	"time"

	"github.com/mangrove-guardian/backend/pkg/enum"
)

type AdminRoleType string

var (
	RoleModerator  = enum.New(AdminRoleType("moderator"))
	RoleAdmin      = enum.New(AdminRoleType("admin"))
	RoleSuperAdmin = enum.New(AdminRoleType("super_admin"))
)

type VerificationStatus string

var (
	VerificationPending  = enum.New(VerificationStatus("pending"))
	VerificationApproved = enum.New(VerificationStatus("approved"))
	VerificationRejected = enum.New(VerificationStatus("rejected"))
)

// Capability names gate one administrative action each. The vocabulary is
// closed; ManageAdmins is derived from the role type and never from the
// stored permission list.
const (
	CapReadReports     = "read_reports"
	CapManageUsers     = "manage_users"
	CapViewAnalytics   = "view_analytics"
	CapManageAdmins    = "manage_admins"
	CapManageContent   = "manage_content"
	CapModerateReports = "moderate_reports"
)

type AdminRole struct {
	Base
	UserID string `gorm:"unique"`
	User   User   `gorm:"foreignKey:UserID"`

	RoleType           AdminRoleType
	VerificationStatus VerificationStatus
	Permissions        Array[string]
	IsActive           bool

	CreatedBy  sql.NullString
	ApprovedBy sql.NullString
	ApprovedAt sql.NullTime
	AdminNotes string
}

func (r *AdminRole) Approve(by string, at time.Time) {
	r.VerificationStatus = VerificationApproved
	r.ApprovedBy = sql.NullString{String: by, Valid: true}
	r.ApprovedAt = sql.NullTime{Time: at, Valid: true}
}
