package cron

import (
	"context"
	"time"

	"github.com/mangrove-guardian/backend/internal/domain/reward"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
)

// ReconcileCronJob sweeps the two derived views the rest of the system
// assumes are consistent:
//
//   - a profile's is_admin flag must track whether the user holds an
//     approved active admin role,
//   - a coin balance must equal the signup grant plus the sum of the
//     user's reward ledger entries.
//
// Both can drift after a crash between paired writes; the sweep repairs
// them from the authoritative side (the role table and the ledger). Profile
// points are only compared, not repaired, because admins may adjust them
// by hand.
type ReconcileCronJob struct {
	profileRepo   repository.ProfileRepository
	adminRoleRepo repository.AdminRoleRepository
	coinRepo      repository.CoinRepository
	rewardLogRepo repository.RewardLogRepository
	interval      time.Duration
}

func NewReconcileCronJob(
	profileRepo repository.ProfileRepository,
	adminRoleRepo repository.AdminRoleRepository,
	coinRepo repository.CoinRepository,
	rewardLogRepo repository.RewardLogRepository,
	interval time.Duration,
) *ReconcileCronJob {
	return &ReconcileCronJob{
		profileRepo:   profileRepo,
		adminRoleRepo: adminRoleRepo,
		coinRepo:      coinRepo,
		rewardLogRepo: rewardLogRepo,
		interval:      interval,
	}
}

func (job *ReconcileCronJob) Do(ctx context.Context) {
	job.reconcileAdminFlags(ctx)
	job.reconcileBalances(ctx)
}

func (job *ReconcileCronJob) reconcileAdminFlags(ctx context.Context) {
	roles, err := job.adminRoleRepo.GetAllActive(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active admin roles: %v", err)
		return
	}

	activeByUser := make(map[string]bool, len(roles))
	for _, role := range roles {
		activeByUser[role.UserID] = true
	}

	// Flag anyone holding an active role but not marked as admin.
	for userID := range activeByUser {
		profile, err := job.profileRepo.GetByUserID(ctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get profile of %s: %v", userID, err)
			continue
		}

		if !profile.IsAdmin {
			xcontext.Logger(ctx).Warnf("User %s holds an admin role but is not flagged, repairing", userID)
			if err := job.profileRepo.SetAdminFlag(ctx, userID, true); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot set admin flag of %s: %v", userID, err)
			}
		}
	}

	// Unflag anyone marked as admin without an active role.
	flagged, err := job.profileRepo.GetAdminFlagged(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get admin-flagged profiles: %v", err)
		return
	}

	for _, profile := range flagged {
		if !activeByUser[profile.UserID] {
			xcontext.Logger(ctx).Warnf("User %s is flagged as admin without a role, repairing", profile.UserID)
			if err := job.profileRepo.SetAdminFlag(ctx, profile.UserID, false); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot clear admin flag of %s: %v", profile.UserID, err)
			}
		}
	}
}

func (job *ReconcileCronJob) reconcileBalances(ctx context.Context) {
	userIDs, err := job.rewardLogRepo.GetUserIDs(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rewarded users: %v", err)
		return
	}

	for _, userID := range userIDs {
		sum, err := job.rewardLogRepo.SumByUserID(ctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot sum rewards of %s: %v", userID, err)
			continue
		}

		expected := uint64(reward.SignupCoinGrant) + sum

		coin, err := job.coinRepo.GetByUserID(ctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get coin account of %s: %v", userID, err)
			continue
		}

		if coin.Balance != expected {
			xcontext.Logger(ctx).Warnf("Balance of %s is %d, expected %d, repairing",
				userID, coin.Balance, expected)

			// Guarded on the value just read: a reward landing during the
			// sweep must not be erased. A lost race waits for the next run.
			won, err := job.coinRepo.SetBalanceFrom(ctx, userID, coin.Balance, expected)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot repair balance of %s: %v", userID, err)
			} else if !won {
				xcontext.Logger(ctx).Warnf("Balance of %s changed during repair, skipping", userID)
			}
		}

		profile, err := job.profileRepo.GetByUserID(ctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get profile of %s: %v", userID, err)
			continue
		}

		if profile.Points != sum {
			xcontext.Logger(ctx).Warnf("Points of %s are %d, ledger says %d",
				userID, profile.Points, sum)
		}
	}
}

func (job *ReconcileCronJob) RunNow() bool {
	return true
}

func (job *ReconcileCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
