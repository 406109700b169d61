package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Soft denials. Anything else out of the verifier is a backing store
// failure and must not be treated as a 403.
var (
	ErrNotAnAdmin   = errors.New("user is not an admin")
	ErrNoPermission = errors.New("user does not have permission")
)

var defaultPermissions = map[entity.AdminRoleType][]string{
	entity.RoleModerator: {
		entity.CapReadReports,
		entity.CapModerateReports,
	},
	entity.RoleAdmin: {
		entity.CapReadReports,
		entity.CapModerateReports,
		entity.CapManageUsers,
		entity.CapViewAnalytics,
		entity.CapManageContent,
	},
	entity.RoleSuperAdmin: {
		entity.CapReadReports,
		entity.CapModerateReports,
		entity.CapManageUsers,
		entity.CapViewAnalytics,
		entity.CapManageContent,
		entity.CapManageAdmins,
	},
}

// DefaultPermissions returns the capability grant a role carries when no
// explicit permission list was stored for it.
func DefaultPermissions(roleType entity.AdminRoleType) []string {
	return slices.Clone(defaultPermissions[roleType])
}

// Access is the effective capability set of one admin role.
type Access struct {
	RoleType     entity.AdminRoleType
	capabilities map[string]bool
}

// ResolveAccess computes the capabilities an approved role actually grants.
// The stored permission list is advisory for everything except ManageAdmins,
// which comes from the role type alone: no stored list can grant it to a
// non-super-admin, and a super admin always holds it.
func ResolveAccess(role *entity.AdminRole) Access {
	perms := []string(role.Permissions)
	if len(perms) == 0 {
		perms = defaultPermissions[role.RoleType]
	}

	capabilities := map[string]bool{}
	for _, p := range perms {
		if p == entity.CapManageAdmins {
			continue
		}

		capabilities[p] = true
	}

	capabilities[entity.CapManageAdmins] = role.RoleType == entity.RoleSuperAdmin

	return Access{RoleType: role.RoleType, capabilities: capabilities}
}

func (a Access) Has(capability string) bool {
	return a.capabilities[capability]
}

func (a Access) HasAll(capabilities ...string) bool {
	for _, c := range capabilities {
		if !a.capabilities[c] {
			return false
		}
	}

	return true
}

func (a Access) HasAny(capabilities ...string) bool {
	for _, c := range capabilities {
		if a.capabilities[c] {
			return true
		}
	}

	return false
}

// Capabilities returns the granted capability names in no particular order.
func (a Access) Capabilities() []string {
	result := make([]string, 0, len(a.capabilities))
	for c, granted := range a.capabilities {
		if granted {
			result = append(result, c)
		}
	}

	return result
}

type AdminVerifier struct {
	adminRoleRepo repository.AdminRoleRepository
}

func NewAdminVerifier(adminRoleRepo repository.AdminRoleRepository) *AdminVerifier {
	return &AdminVerifier{adminRoleRepo: adminRoleRepo}
}

// Verify checks that the request user holds an approved active role
// granting every listed capability.
func (verifier *AdminVerifier) Verify(ctx context.Context, capabilities ...string) error {
	access, err := verifier.Access(ctx)
	if err != nil {
		return err
	}

	if !access.HasAll(capabilities...) {
		return ErrNoPermission
	}

	return nil
}

// Access resolves the request user's effective capability set. A missing
// role is ErrNotAnAdmin; a store failure propagates as-is.
func (verifier *AdminVerifier) Access(ctx context.Context) (Access, error) {
	userID := xcontext.RequestUserID(ctx)
	role, err := verifier.adminRoleRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Access{}, ErrNotAnAdmin
		}

		return Access{}, fmt.Errorf("get active role: %w", err)
	}

	return ResolveAccess(role), nil
}
