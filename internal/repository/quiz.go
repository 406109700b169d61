package repository

import (
	"context"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetQuizzesFilter struct {
	Difficulty entity.Difficulty
	Offset     int
	Limit      int
}

type UpdateQuizFilter struct {
	Title      string
	Difficulty entity.Difficulty
	Questions  int
}

type QuizRepository interface {
	Create(ctx context.Context, quiz *entity.Quiz) error
	GetByID(ctx context.Context, id string) (*entity.Quiz, error)
	GetList(ctx context.Context, filter GetQuizzesFilter) ([]entity.Quiz, error)
	Update(ctx context.Context, id string, filter UpdateQuizFilter) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type quizRepository struct{}

func NewQuizRepository() QuizRepository {
	return &quizRepository{}
}

func (r *quizRepository) Create(ctx context.Context, quiz *entity.Quiz) error {
	return xcontext.DB(ctx).Create(quiz).Error
}

func (r *quizRepository) GetByID(ctx context.Context, id string) (*entity.Quiz, error) {
	var result entity.Quiz
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *quizRepository) GetList(ctx context.Context, filter GetQuizzesFilter) ([]entity.Quiz, error) {
	tx := xcontext.DB(ctx).Offset(filter.Offset).Limit(filter.Limit).Order("created_at ASC")
	if filter.Difficulty != "" {
		tx = tx.Where("difficulty=?", filter.Difficulty)
	}

	var result []entity.Quiz
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *quizRepository) Update(ctx context.Context, id string, filter UpdateQuizFilter) error {
	updates := map[string]any{}
	if filter.Title != "" {
		updates["title"] = filter.Title
	}

	if filter.Difficulty != "" {
		updates["difficulty"] = filter.Difficulty
	}

	if filter.Questions != 0 {
		updates["questions"] = filter.Questions
	}

	if len(updates) == 0 {
		return nil
	}

	tx := xcontext.DB(ctx).Model(&entity.Quiz{}).Where("id=?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *quizRepository) Delete(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Quiz{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *quizRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.Quiz{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
