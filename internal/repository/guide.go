package repository

import (
	"context"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
)

type GetGuidesFilter struct {
	Category string
	Offset   int
	Limit    int
}

type GuideRepository interface {
	Create(ctx context.Context, guide *entity.Guide) error
	GetByID(ctx context.Context, id string) (*entity.Guide, error)
	GetList(ctx context.Context, filter GetGuidesFilter) ([]entity.Guide, error)
}

type guideRepository struct{}

func NewGuideRepository() GuideRepository {
	return &guideRepository{}
}

func (r *guideRepository) Create(ctx context.Context, guide *entity.Guide) error {
	return xcontext.DB(ctx).Create(guide).Error
}

func (r *guideRepository) GetByID(ctx context.Context, id string) (*entity.Guide, error) {
	var result entity.Guide
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *guideRepository) GetList(ctx context.Context, filter GetGuidesFilter) ([]entity.Guide, error) {
	tx := xcontext.DB(ctx).Offset(filter.Offset).Limit(filter.Limit).Order("created_at ASC")
	if filter.Category != "" {
		tx = tx.Where("category=?", filter.Category)
	}

	var result []entity.Guide
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
