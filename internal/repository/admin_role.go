package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetAdminRolesFilter struct {
	VerificationStatus entity.VerificationStatus
	RoleType           entity.AdminRoleType
	Offset             int
	Limit              int
}

type AdminRoleRepository interface {
	Create(ctx context.Context, role *entity.AdminRole) error
	GetByID(ctx context.Context, id string) (*entity.AdminRole, error)
	GetByUserID(ctx context.Context, userID string) (*entity.AdminRole, error)
	GetActiveByUserID(ctx context.Context, userID string) (*entity.AdminRole, error)
	GetList(ctx context.Context, filter GetAdminRolesFilter) ([]entity.AdminRole, error)
	GetAllActive(ctx context.Context) ([]entity.AdminRole, error)
	UpdateReview(ctx context.Context, id string, status entity.VerificationStatus, by string, at time.Time, notes string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type adminRoleRepository struct{}

func NewAdminRoleRepository() AdminRoleRepository {
	return &adminRoleRepository{}
}

func (r *adminRoleRepository) Create(ctx context.Context, role *entity.AdminRole) error {
	return xcontext.DB(ctx).Create(role).Error
}

func (r *adminRoleRepository) GetByID(ctx context.Context, id string) (*entity.AdminRole, error) {
	var result entity.AdminRole
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *adminRoleRepository) GetByUserID(ctx context.Context, userID string) (*entity.AdminRole, error) {
	var result entity.AdminRole
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetActiveByUserID returns the role the access resolver trusts: it must
// be both approved and active.
func (r *adminRoleRepository) GetActiveByUserID(ctx context.Context, userID string) (*entity.AdminRole, error) {
	var result entity.AdminRole
	err := xcontext.DB(ctx).Take(&result,
		"user_id=? AND verification_status=? AND is_active=?",
		userID, entity.VerificationApproved, true).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *adminRoleRepository) GetList(ctx context.Context, filter GetAdminRolesFilter) ([]entity.AdminRole, error) {
	tx := xcontext.DB(ctx).Offset(filter.Offset).Limit(filter.Limit).Order("created_at DESC")
	if filter.VerificationStatus != "" {
		tx = tx.Where("verification_status=?", filter.VerificationStatus)
	}

	if filter.RoleType != "" {
		tx = tx.Where("role_type=?", filter.RoleType)
	}

	var result []entity.AdminRole
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *adminRoleRepository) GetAllActive(ctx context.Context) ([]entity.AdminRole, error) {
	var result []entity.AdminRole
	err := xcontext.DB(ctx).
		Find(&result, "verification_status=? AND is_active=?", entity.VerificationApproved, true).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateReview moves a pending role to approved or rejected. The status
// guard makes the review a one-shot transition even with concurrent
// reviewers.
func (r *adminRoleRepository) UpdateReview(
	ctx context.Context,
	id string,
	status entity.VerificationStatus,
	by string,
	at time.Time,
	notes string,
) error {
	updates := map[string]any{
		"verification_status": status,
		"approved_by":         sql.NullString{String: by, Valid: true},
		"approved_at":         sql.NullTime{Time: at, Valid: true},
		"is_active":           status == entity.VerificationApproved,
	}
	if notes != "" {
		updates["admin_notes"] = notes
	}

	tx := xcontext.DB(ctx).Model(&entity.AdminRole{}).
		Where("id=? AND verification_status=?", id, entity.VerificationPending).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *adminRoleRepository) Delete(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.AdminRole{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *adminRoleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.AdminRole{}).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
