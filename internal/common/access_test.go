package common

import (
	"testing"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/testutil"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_ResolveAccess_Defaults(t *testing.T) {
	moderator := ResolveAccess(&entity.AdminRole{RoleType: entity.RoleModerator})
	require.True(t, moderator.Has(entity.CapReadReports))
	require.True(t, moderator.Has(entity.CapModerateReports))
	require.False(t, moderator.Has(entity.CapManageUsers))
	require.False(t, moderator.Has(entity.CapManageAdmins))

	admin := ResolveAccess(&entity.AdminRole{RoleType: entity.RoleAdmin})
	require.True(t, admin.HasAll(entity.CapReadReports, entity.CapManageUsers,
		entity.CapViewAnalytics, entity.CapManageContent, entity.CapModerateReports))
	require.False(t, admin.Has(entity.CapManageAdmins))

	superAdmin := ResolveAccess(&entity.AdminRole{RoleType: entity.RoleSuperAdmin})
	require.True(t, superAdmin.Has(entity.CapManageAdmins))
}

func Test_ResolveAccess_StoredPermissions(t *testing.T) {
	// A stored list narrows the grant.
	access := ResolveAccess(&entity.AdminRole{
		RoleType:    entity.RoleAdmin,
		Permissions: entity.Array[string]{entity.CapReadReports},
	})
	require.True(t, access.Has(entity.CapReadReports))
	require.False(t, access.Has(entity.CapManageUsers))

	// But no stored list grants manage_admins to a non-super-admin.
	access = ResolveAccess(&entity.AdminRole{
		RoleType:    entity.RoleAdmin,
		Permissions: entity.Array[string]{entity.CapManageAdmins},
	})
	require.False(t, access.Has(entity.CapManageAdmins))

	// And a super admin holds it even when the stored list omits it.
	access = ResolveAccess(&entity.AdminRole{
		RoleType:    entity.RoleSuperAdmin,
		Permissions: entity.Array[string]{entity.CapReadReports},
	})
	require.True(t, access.Has(entity.CapManageAdmins))
}

func Test_ResolveAccess_HasAnyAndCapabilities(t *testing.T) {
	access := ResolveAccess(&entity.AdminRole{RoleType: entity.RoleModerator})
	require.True(t, access.HasAny(entity.CapManageUsers, entity.CapReadReports))
	require.False(t, access.HasAny(entity.CapManageUsers, entity.CapManageAdmins))

	require.ElementsMatch(t,
		[]string{entity.CapReadReports, entity.CapModerateReports},
		access.Capabilities())
}

func Test_AdminVerifier_Verify(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	verifier := NewAdminVerifier(repository.NewAdminRoleRepository())

	modCtx := testutil.MockContextWithUserID(ctx, testutil.Moderator1)
	require.NoError(t, verifier.Verify(modCtx, entity.CapModerateReports))
	require.Error(t, verifier.Verify(modCtx, entity.CapManageUsers))

	// A plain citizen has no access at all.
	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1)
	err := verifier.Verify(userCtx, entity.CapReadReports)
	require.Error(t, err)
	require.Equal(t, "user is not an admin", err.Error())
}

func Test_AdminVerifier_StoreFailure(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	verifier := NewAdminVerifier(repository.NewAdminRoleRepository())

	// A broken backing store is not the same as "not an admin".
	require.NoError(t, xcontext.DB(ctx).Migrator().DropTable(&entity.AdminRole{}))

	_, err := verifier.Access(testutil.MockContextWithUserID(ctx, testutil.Admin1))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotAnAdmin)

	err = verifier.Verify(testutil.MockContextWithUserID(ctx, testutil.Admin1), entity.CapReadReports)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotAnAdmin)
	require.NotErrorIs(t, err, ErrNoPermission)
}

func Test_AdminVerifier_InactiveRoleGrantsNothing(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	adminRoleRepo := repository.NewAdminRoleRepository()
	verifier := NewAdminVerifier(adminRoleRepo)

	// A pending role is not an approved one.
	err := adminRoleRepo.Create(ctx, &entity.AdminRole{
		Base:               entity.Base{ID: "role-user1"},
		UserID:             testutil.User1,
		RoleType:           entity.RoleModerator,
		VerificationStatus: entity.VerificationPending,
		IsActive:           false,
	})
	require.NoError(t, err)

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1)
	require.Error(t, verifier.Verify(userCtx, entity.CapReadReports))
}
