package repository

import (
	"context"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UpdateProfileFilter struct {
	DisplayName string
	Country     string
	Points      *uint64
	Rank        *int64
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	GetList(ctx context.Context, q string, offset, limit int) ([]entity.Profile, error)
	GetLeaderboard(ctx context.Context, offset, limit int) ([]entity.Profile, error)
	Update(ctx context.Context, userID string, filter UpdateProfileFilter) error
	SetAdminFlag(ctx context.Context, userID string, isAdmin bool) error
	SetAvatarURL(ctx context.Context, userID, url string) error
	GetAdminFlagged(ctx context.Context) ([]entity.Profile, error)
	IncreasePoints(ctx context.Context, userID string, amount uint64) error
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	return xcontext.DB(ctx).Create(profile).Error
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	var result entity.Profile
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *profileRepository) GetList(ctx context.Context, q string, offset, limit int) ([]entity.Profile, error) {
	tx := xcontext.DB(ctx).Model(&entity.Profile{}).
		Order("created_at DESC").
		Offset(offset).Limit(limit)

	if q != "" {
		tx = tx.Where("display_name LIKE ? OR country LIKE ?", "%"+q+"%", "%"+q+"%")
	}

	var result []entity.Profile
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *profileRepository) GetLeaderboard(ctx context.Context, offset, limit int) ([]entity.Profile, error) {
	var result []entity.Profile
	err := xcontext.DB(ctx).
		Order("points DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *profileRepository) Update(ctx context.Context, userID string, filter UpdateProfileFilter) error {
	updateMap := map[string]any{}
	if filter.DisplayName != "" {
		updateMap["display_name"] = filter.DisplayName
	}

	if filter.Country != "" {
		updateMap["country"] = filter.Country
	}

	if filter.Points != nil {
		updateMap["points"] = *filter.Points
	}

	if filter.Rank != nil {
		updateMap["rank"] = *filter.Rank
	}

	if len(updateMap) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Model(&entity.Profile{}).
		Where("user_id=?", userID).
		Updates(updateMap).Error
}

func (r *profileRepository) SetAdminFlag(ctx context.Context, userID string, isAdmin bool) error {
	return xcontext.DB(ctx).Model(&entity.Profile{}).
		Where("user_id=?", userID).
		Update("is_admin", isAdmin).Error
}

func (r *profileRepository) SetAvatarURL(ctx context.Context, userID, url string) error {
	return xcontext.DB(ctx).Model(&entity.Profile{}).
		Where("user_id=?", userID).
		Update("avatar_url", url).Error
}

func (r *profileRepository) GetAdminFlagged(ctx context.Context) ([]entity.Profile, error) {
	var result []entity.Profile
	if err := xcontext.DB(ctx).Find(&result, "is_admin=?", true).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *profileRepository) IncreasePoints(ctx context.Context, userID string, amount uint64) error {
	tx := xcontext.DB(ctx).Model(&entity.Profile{}).
		Where("user_id=?", userID).
		Update("points", gorm.Expr("points+?", amount))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
