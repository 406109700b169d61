package repository

import (
	"context"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetCoursesFilter struct {
	Difficulty entity.Difficulty
	Offset     int
	Limit      int
}

type UpdateCourseFilter struct {
	Title       string
	Description string
	Difficulty  entity.Difficulty
	Duration    string
	Lessons     int
}

type CourseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	GetList(ctx context.Context, filter GetCoursesFilter) ([]entity.Course, error)
	Update(ctx context.Context, id string, filter UpdateCourseFilter) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type courseRepository struct{}

func NewCourseRepository() CourseRepository {
	return &courseRepository{}
}

func (r *courseRepository) Create(ctx context.Context, course *entity.Course) error {
	return xcontext.DB(ctx).Create(course).Error
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	var result entity.Course
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *courseRepository) GetList(ctx context.Context, filter GetCoursesFilter) ([]entity.Course, error) {
	tx := xcontext.DB(ctx).Offset(filter.Offset).Limit(filter.Limit).Order("created_at ASC")
	if filter.Difficulty != "" {
		tx = tx.Where("difficulty=?", filter.Difficulty)
	}

	var result []entity.Course
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *courseRepository) Update(ctx context.Context, id string, filter UpdateCourseFilter) error {
	updates := map[string]any{}
	if filter.Title != "" {
		updates["title"] = filter.Title
	}

	if filter.Description != "" {
		updates["description"] = filter.Description
	}

	if filter.Difficulty != "" {
		updates["difficulty"] = filter.Difficulty
	}

	if filter.Duration != "" {
		updates["duration"] = filter.Duration
	}

	if filter.Lessons != 0 {
		updates["lessons"] = filter.Lessons
	}

	if len(updates) == 0 {
		return nil
	}

	tx := xcontext.DB(ctx).Model(&entity.Course{}).Where("id=?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Course{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.Course{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
