package reward

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
)

// Reasons recorded on ledger entries.
const (
	ReasonSignupBonus  = "signup_bonus"
	ReasonReportReward = "report_reward"
	ReasonQuizReward   = "quiz_reward"
)

// Ledger applies rewards. Every grant touches three rows at once: the coin
// balance, the profile points, and an append-only RewardLog entry, so the
// log always accounts for both counters. Apply expects to run inside a
// transaction begun by the caller.
type Ledger struct {
	coinRepo      repository.CoinRepository
	profileRepo   repository.ProfileRepository
	rewardLogRepo repository.RewardLogRepository
}

func NewLedger(
	coinRepo repository.CoinRepository,
	profileRepo repository.ProfileRepository,
	rewardLogRepo repository.RewardLogRepository,
) *Ledger {
	return &Ledger{
		coinRepo:      coinRepo,
		profileRepo:   profileRepo,
		rewardLogRepo: rewardLogRepo,
	}
}

// Apply grants amount coins and points to the user and records the grant
// under sourceID. A zero amount is a no-op. The unique constraint on
// sourceID turns a replayed grant into an error instead of a double pay.
func (l *Ledger) Apply(ctx context.Context, userID string, amount uint64, reason, sourceID string) error {
	if amount == 0 {
		return nil
	}

	if userID == "" || sourceID == "" {
		return errors.New("ledger entry needs a user and a source")
	}

	if err := l.coinRepo.IncreaseBalance(ctx, userID, amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase coin balance: %v", err)
		return err
	}

	if err := l.profileRepo.IncreasePoints(ctx, userID, amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase profile points: %v", err)
		return err
	}

	err := l.rewardLogRepo.Create(ctx, &entity.RewardLog{
		Base:     entity.Base{ID: uuid.NewString()},
		UserID:   userID,
		Amount:   amount,
		Reason:   reason,
		SourceID: sourceID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append reward log: %v", err)
		return err
	}

	return nil
}
