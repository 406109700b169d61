package cron

import (
	"testing"
	"time"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newReconcileJob() *ReconcileCronJob {
	return NewReconcileCronJob(
		repository.NewProfileRepository(),
		repository.NewAdminRoleRepository(),
		repository.NewCoinRepository(),
		repository.NewRewardLogRepository(),
		time.Hour,
	)
}

func Test_ReconcileCronJob_RepairsAdminFlags(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	profileRepo := repository.NewProfileRepository()

	// Drift both ways: an active moderator lost the flag, a citizen
	// gained it.
	require.NoError(t, profileRepo.SetAdminFlag(ctx, testutil.Moderator1, false))
	require.NoError(t, profileRepo.SetAdminFlag(ctx, testutil.User1, true))

	newReconcileJob().Do(ctx)

	moderator, err := profileRepo.GetByUserID(ctx, testutil.Moderator1)
	require.NoError(t, err)
	require.True(t, moderator.IsAdmin)

	citizen, err := profileRepo.GetByUserID(ctx, testutil.User1)
	require.NoError(t, err)
	require.False(t, citizen.IsAdmin)

	admin, err := profileRepo.GetByUserID(ctx, testutil.Admin1)
	require.NoError(t, err)
	require.True(t, admin.IsAdmin)
}

func Test_ReconcileCronJob_RepairsBalances(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	coinRepo := repository.NewCoinRepository()
	rewardLogRepo := repository.NewRewardLogRepository()

	// User1 earned 50 coins on the ledger, so the account should hold
	// the signup grant plus 50.
	err := rewardLogRepo.Create(ctx, &entity.RewardLog{
		Base:     entity.Base{ID: "log1"},
		UserID:   testutil.User1,
		Amount:   50,
		Reason:   "report_reward",
		SourceID: testutil.Report1,
	})
	require.NoError(t, err)

	// Crash drift: the ledger entry landed but the balance did not.
	require.NoError(t, coinRepo.SetBalance(ctx, testutil.User1, 100))

	newReconcileJob().Do(ctx)

	coin, err := coinRepo.GetByUserID(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, uint64(150), coin.Balance)
}

func Test_ReconcileCronJob_LeavesConsistentStateAlone(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	coinRepo := repository.NewCoinRepository()
	rewardLogRepo := repository.NewRewardLogRepository()

	err := rewardLogRepo.Create(ctx, &entity.RewardLog{
		Base:     entity.Base{ID: "log1"},
		UserID:   testutil.User2,
		Amount:   30,
		Reason:   "quiz_reward",
		SourceID: "score1",
	})
	require.NoError(t, err)
	require.NoError(t, coinRepo.SetBalance(ctx, testutil.User2, 130))

	newReconcileJob().Do(ctx)

	coin, err := coinRepo.GetByUserID(ctx, testutil.User2)
	require.NoError(t, err)
	require.Equal(t, uint64(130), coin.Balance)
}

func Test_ReconcileCronJob_Schedule(t *testing.T) {
	job := newReconcileJob()
	require.True(t, job.RunNow())

	next := job.Next()
	require.WithinDuration(t, time.Now().Add(time.Hour), next, time.Minute)
}
