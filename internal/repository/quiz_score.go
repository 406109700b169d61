package repository

import (
	"context"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
)

type QuizScoreRepository interface {
	Create(ctx context.Context, score *entity.QuizScore) error
	GetByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.QuizScore, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
}

type quizScoreRepository struct{}

func NewQuizScoreRepository() QuizScoreRepository {
	return &quizScoreRepository{}
}

func (r *quizScoreRepository) Create(ctx context.Context, score *entity.QuizScore) error {
	return xcontext.DB(ctx).Create(score).Error
}

func (r *quizScoreRepository) GetByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.QuizScore, error) {
	var result []entity.QuizScore
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Offset(offset).Limit(limit).
		Order("completed_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *quizScoreRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.QuizScore{}).
		Where("user_id=?", userID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
