package repository_test

import (
	"testing"

	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_coinRepository_SetBalanceFrom(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	coinRepo := repository.NewCoinRepository()

	// The overwrite lands while the balance still holds the value read.
	won, err := coinRepo.SetBalanceFrom(ctx, testutil.User1, 100, 150)
	require.NoError(t, err)
	require.True(t, won)

	// A stale read loses and changes nothing.
	won, err = coinRepo.SetBalanceFrom(ctx, testutil.User1, 100, 999)
	require.NoError(t, err)
	require.False(t, won)

	coin, err := coinRepo.GetByUserID(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, uint64(150), coin.Balance)
}
