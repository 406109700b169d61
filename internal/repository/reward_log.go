package repository

import (
	"context"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
)

type RewardLogRepository interface {
	Create(ctx context.Context, log *entity.RewardLog) error
	GetByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.RewardLog, error)
	SumByUserID(ctx context.Context, userID string) (uint64, error)
	GetUserIDs(ctx context.Context) ([]string, error)
}

type rewardLogRepository struct{}

func NewRewardLogRepository() RewardLogRepository {
	return &rewardLogRepository{}
}

func (r *rewardLogRepository) Create(ctx context.Context, log *entity.RewardLog) error {
	return xcontext.DB(ctx).Create(log).Error
}

func (r *rewardLogRepository) GetByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.RewardLog, error) {
	var result []entity.RewardLog
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *rewardLogRepository) SumByUserID(ctx context.Context, userID string) (uint64, error) {
	var sum uint64
	err := xcontext.DB(ctx).Model(&entity.RewardLog{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id=?", userID).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	return sum, nil
}

// GetUserIDs lists every user with at least one ledger entry, for the
// reconciliation sweep.
func (r *rewardLogRepository) GetUserIDs(ctx context.Context) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).Model(&entity.RewardLog{}).
		Distinct("user_id").
		Pluck("user_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
