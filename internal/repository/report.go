package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetReportsFilter struct {
	Status       entity.ReportStatus
	IncidentType entity.IncidentType
	Severity     entity.Severity
	UserID       string
	Offset       int
	Limit        int
}

type UpdateReportFilter struct {
	Title        string
	Description  string
	EvidenceURLs []string
}

type StatusCount struct {
	Status entity.ReportStatus
	Count  int64
}

type SeverityCount struct {
	Severity entity.Severity
	Count    int64
}

type TypeCount struct {
	IncidentType entity.IncidentType
	Count        int64
}

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	GetList(ctx context.Context, filter GetReportsFilter) ([]entity.Report, error)
	Update(ctx context.Context, id string, filter UpdateReportFilter) error
	UpdateReviewFromPending(ctx context.Context, id string, status entity.ReportStatus, reviewerID, notes string) (bool, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	CountBySeverity(ctx context.Context) ([]SeverityCount, error)
	CountByType(ctx context.Context) ([]TypeCount, error)
}

type reportRepository struct{}

func NewReportRepository() ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	return xcontext.DB(ctx).Create(report).Error
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	var result entity.Report
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *reportRepository) GetList(ctx context.Context, filter GetReportsFilter) ([]entity.Report, error) {
	tx := xcontext.DB(ctx).Offset(filter.Offset).Limit(filter.Limit).Order("created_at DESC")
	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if filter.IncidentType != "" {
		tx = tx.Where("incident_type=?", filter.IncidentType)
	}

	if filter.Severity != "" {
		tx = tx.Where("severity=?", filter.Severity)
	}

	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	var result []entity.Report
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *reportRepository) Update(ctx context.Context, id string, filter UpdateReportFilter) error {
	updates := map[string]any{}
	if filter.Title != "" {
		updates["title"] = filter.Title
	}

	if filter.Description != "" {
		updates["description"] = filter.Description
	}

	if filter.EvidenceURLs != nil {
		updates["evidence_urls"] = entity.Array[string](filter.EvidenceURLs)
	}

	if len(updates) == 0 {
		return nil
	}

	tx := xcontext.DB(ctx).Model(&entity.Report{}).Where("id=?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdateReviewFromPending performs the pending-only transition as a single
// conditional update. It returns true when this call won the transition,
// false when another reviewer already moved the report out of Pending. The
// caller pays the reward only on a true result, so a report is never
// rewarded twice.
func (r *reportRepository) UpdateReviewFromPending(
	ctx context.Context,
	id string,
	status entity.ReportStatus,
	reviewerID, notes string,
) (bool, error) {
	updates := map[string]any{
		"status":      status,
		"reviewer_id": sql.NullString{String: reviewerID, Valid: true},
	}
	if notes != "" {
		updates["admin_notes"] = notes
	}

	tx := xcontext.DB(ctx).Model(&entity.Report{}).
		Where("id=? AND status=?", id, entity.ReportPending).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Report{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *reportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.Report{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *reportRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Report{}).
		Where("created_at >= ?", since).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *reportRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var result []StatusCount
	err := xcontext.DB(ctx).Model(&entity.Report{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *reportRepository) CountBySeverity(ctx context.Context) ([]SeverityCount, error) {
	var result []SeverityCount
	err := xcontext.DB(ctx).Model(&entity.Report{}).
		Select("severity, COUNT(*) as count").
		Group("severity").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *reportRepository) CountByType(ctx context.Context) ([]TypeCount, error) {
	var result []TypeCount
	err := xcontext.DB(ctx).Model(&entity.Report{}).
		Select("incident_type, COUNT(*) as count").
		Group("incident_type").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
