package reward

import (
	"testing"

	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_Ledger_Apply(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	coinRepo := repository.NewCoinRepository()
	profileRepo := repository.NewProfileRepository()
	rewardLogRepo := repository.NewRewardLogRepository()
	ledger := NewLedger(coinRepo, profileRepo, rewardLogRepo)

	err := ledger.Apply(ctx, testutil.User1, 50, ReasonReportReward, "source-1")
	require.NoError(t, err)

	coin, err := coinRepo.GetByUserID(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, uint64(150), coin.Balance)

	profile, err := profileRepo.GetByUserID(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, uint64(50), profile.Points)

	sum, err := rewardLogRepo.SumByUserID(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, uint64(50), sum)
}

func Test_Ledger_Apply_ReplayedSourceFails(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	ledger := NewLedger(
		repository.NewCoinRepository(),
		repository.NewProfileRepository(),
		repository.NewRewardLogRepository(),
	)

	err := ledger.Apply(ctx, testutil.User1, 50, ReasonReportReward, "source-1")
	require.NoError(t, err)

	// The same source must never pay twice, even for another user.
	err = ledger.Apply(ctx, testutil.User2, 50, ReasonReportReward, "source-1")
	require.Error(t, err)
}

func Test_Ledger_Apply_ZeroAmountIsNoop(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	coinRepo := repository.NewCoinRepository()
	rewardLogRepo := repository.NewRewardLogRepository()
	ledger := NewLedger(coinRepo, repository.NewProfileRepository(), rewardLogRepo)

	err := ledger.Apply(ctx, testutil.User1, 0, ReasonReportReward, "source-1")
	require.NoError(t, err)

	coin, err := coinRepo.GetByUserID(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, uint64(100), coin.Balance)

	sum, err := rewardLogRepo.SumByUserID(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, uint64(0), sum)
}

func Test_Ledger_Apply_RequiresUserAndSource(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	ledger := NewLedger(
		repository.NewCoinRepository(),
		repository.NewProfileRepository(),
		repository.NewRewardLogRepository(),
	)

	require.Error(t, ledger.Apply(ctx, "", 10, ReasonReportReward, "source-1"))
	require.Error(t, ledger.Apply(ctx, testutil.User1, 10, ReasonReportReward, ""))
}
