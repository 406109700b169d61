package repository

import (
	"context"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CoinRepository interface {
	Create(ctx context.Context, coin *entity.Coin) error
	GetByUserID(ctx context.Context, userID string) (*entity.Coin, error)
	IncreaseBalance(ctx context.Context, userID string, amount uint64) error
	SetBalance(ctx context.Context, userID string, balance uint64) error
	SetBalanceFrom(ctx context.Context, userID string, from, to uint64) (bool, error)
}

type coinRepository struct{}

func NewCoinRepository() CoinRepository {
	return &coinRepository{}
}

func (r *coinRepository) Create(ctx context.Context, coin *entity.Coin) error {
	return xcontext.DB(ctx).Create(coin).Error
}

func (r *coinRepository) GetByUserID(ctx context.Context, userID string) (*entity.Coin, error) {
	var result entity.Coin
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *coinRepository) SetBalance(ctx context.Context, userID string, balance uint64) error {
	return xcontext.DB(ctx).Model(&entity.Coin{}).
		Where("user_id=?", userID).
		Update("balance", balance).Error
}

// SetBalanceFrom overwrites the balance only while it still holds the
// value the caller read. Returns false when a concurrent update won.
func (r *coinRepository) SetBalanceFrom(ctx context.Context, userID string, from, to uint64) (bool, error) {
	tx := xcontext.DB(ctx).Model(&entity.Coin{}).
		Where("user_id=? AND balance=?", userID, from).
		Update("balance", to)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

// IncreaseBalance is an additive update so concurrent rewards to the same
// user never lose an increment.
func (r *coinRepository) IncreaseBalance(ctx context.Context, userID string, amount uint64) error {
	tx := xcontext.DB(ctx).Model(&entity.Coin{}).
		Where("user_id=?", userID).
		Update("balance", gorm.Expr("balance+?", amount))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
