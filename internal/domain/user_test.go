package domain

import (
	"testing"

	"github.com/mangrove-guardian/backend/internal/model"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestUserDomain() UserDomain {
	return NewUserDomain(
		repository.NewUserRepository(),
		repository.NewProfileRepository(),
		repository.NewCoinRepository(),
		repository.NewAdminRoleRepository(),
	)
}

func Test_userDomain_GetMe(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestUserDomain()

	resp, err := d.GetMe(testutil.MockContextWithUserID(ctx, testutil.User1), &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User1, resp.ID)
	require.Equal(t, testutil.User1+"@example.com", resp.Email)
	require.False(t, resp.IsAdmin)

	resp, err = d.GetMe(testutil.MockContextWithUserID(ctx, testutil.Admin1), &model.GetMeRequest{})
	require.NoError(t, err)
	require.True(t, resp.IsAdmin)
}

func Test_userDomain_GetMyBalance(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestUserDomain()

	resp, err := d.GetMyBalance(testutil.MockContextWithUserID(ctx, testutil.User1),
		&model.GetMyBalanceRequest{})
	require.NoError(t, err)
	require.Equal(t, uint64(100), resp.Balance)
	require.Equal(t, uint64(0), resp.Points)
}

func Test_userDomain_UpdateProfile(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestUserDomain()

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1)
	_, err := d.UpdateProfile(userCtx, &model.UpdateProfileRequest{
		DisplayName: "Mangrove Watcher",
		Country:     "Malaysia",
	})
	require.NoError(t, err)

	resp, err := d.GetMe(userCtx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, "Mangrove Watcher", resp.DisplayName)
	require.Equal(t, "Malaysia", resp.Country)
}

func Test_userDomain_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestUserDomain()

	// Give User2 the only points so they lead.
	profileRepo := repository.NewProfileRepository()
	require.NoError(t, profileRepo.IncreasePoints(ctx, testutil.User2, 75))

	resp, err := d.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Limit: 3})
	require.NoError(t, err)
	require.Len(t, resp.Users, 3)
	require.Equal(t, testutil.User2, resp.Users[0].ID)
	require.Equal(t, int64(1), resp.Users[0].Rank)
	require.Equal(t, int64(2), resp.Users[1].Rank)

	// Ranks continue across pages.
	resp, err = d.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Offset: 3, Limit: 3})
	require.NoError(t, err)
	require.Equal(t, int64(4), resp.Users[0].Rank)
}

func Test_userDomain_BanUser(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestUserDomain()

	// Banning needs manage_users; moderators lack it.
	_, err := d.BanUser(testutil.MockContextWithUserID(ctx, testutil.Moderator1),
		&model.BanUserRequest{UserID: testutil.User1, Banned: true})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin1)
	_, err = d.BanUser(adminCtx, &model.BanUserRequest{
		UserID: testutil.User1,
		Banned: true,
		Reason: "abuse of the report form",
	})
	require.NoError(t, err)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1)
	require.NoError(t, err)
	require.True(t, user.Banned)
	require.Equal(t, "abuse of the report form", user.BanReason.String)

	// And back again.
	_, err = d.BanUser(adminCtx, &model.BanUserRequest{UserID: testutil.User1, Banned: false})
	require.NoError(t, err)

	user, err = repository.NewUserRepository().GetByID(ctx, testutil.User1)
	require.NoError(t, err)
	require.False(t, user.Banned)

	// Nobody bans themselves.
	_, err = d.BanUser(adminCtx, &model.BanUserRequest{UserID: testutil.Admin1, Banned: true})
	require.Error(t, err)
	require.Equal(t, "Cannot ban yourself", err.Error())
}

func Test_userDomain_UpdateUser(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestUserDomain()

	points := uint64(500)
	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin1)
	_, err := d.UpdateUser(adminCtx, &model.UpdateUserRequest{
		UserID: testutil.User1,
		Points: &points,
	})
	require.NoError(t, err)

	profile, err := repository.NewProfileRepository().GetByUserID(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, uint64(500), profile.Points)

	_, err = d.UpdateUser(testutil.MockContextWithUserID(ctx, testutil.User2),
		&model.UpdateUserRequest{UserID: testutil.User1, Points: &points})
	require.Error(t, err)
}

func Test_userDomain_GetUsers(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestUserDomain()

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin1)
	resp, err := d.GetUsers(adminCtx, &model.GetUsersRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Users, 5)

	resp, err = d.GetUsers(adminCtx, &model.GetUsersRequest{Query: testutil.User1})
	require.NoError(t, err)
	require.Len(t, resp.Users, 1)
	require.Equal(t, testutil.User1, resp.Users[0].ID)

	_, err = d.GetUsers(testutil.MockContextWithUserID(ctx, testutil.User1),
		&model.GetUsersRequest{})
	require.Error(t, err)
}
