package domain

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/mangrove-guardian/backend/internal/common"
	"github.com/mangrove-guardian/backend/internal/domain/reward"
	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/internal/model"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/api/validator"
	"github.com/mangrove-guardian/backend/pkg/enum"
	"github.com/mangrove-guardian/backend/pkg/errorx"
	"github.com/mangrove-guardian/backend/pkg/pubsub"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Kafka topic carrying review outcomes to downstream consumers.
const ReportReviewedTopic = "report_reviewed"

// ReportReviewedEvent is the payload published on ReportReviewedTopic.
type ReportReviewedEvent struct {
	ReportID    string `json:"report_id"`
	ReporterID  string `json:"reporter_id"`
	ReviewerID  string `json:"reviewer_id"`
	Status      string `json:"status"`
	Severity    string `json:"severity"`
	CoinsEarned uint64 `json:"coins_earned"`
}

// Reason attached to the AI verdict when the validation service could not
// be reached; the report is accepted and left to manual review.
const validatorFallbackReason = "validation unavailable, manual review required"

type ReportDomain interface {
	Create(context.Context, *model.CreateReportRequest) (*model.CreateReportResponse, error)
	Get(context.Context, *model.GetReportRequest) (*model.GetReportResponse, error)
	GetList(context.Context, *model.GetReportsRequest) (*model.GetReportsResponse, error)
	GetMyReports(context.Context, *model.GetMyReportsRequest) (*model.GetMyReportsResponse, error)
	Update(context.Context, *model.UpdateReportRequest) (*model.UpdateReportResponse, error)
	Delete(context.Context, *model.DeleteReportRequest) (*model.DeleteReportResponse, error)
	Review(context.Context, *model.ReviewReportRequest) (*model.ReviewReportResponse, error)
	GetStats(context.Context, *model.GetReportStatsRequest) (*model.GetReportStatsResponse, error)
}

type reportDomain struct {
	reportRepo        repository.ReportRepository
	rewardLedger      *reward.Ledger
	adminVerifier     *common.AdminVerifier
	validatorEndpoint validator.IEndpoint
	publisher         pubsub.Publisher
}

func NewReportDomain(
	reportRepo repository.ReportRepository,
	coinRepo repository.CoinRepository,
	profileRepo repository.ProfileRepository,
	rewardLogRepo repository.RewardLogRepository,
	adminRoleRepo repository.AdminRoleRepository,
	validatorEndpoint validator.IEndpoint,
	publisher pubsub.Publisher,
) *reportDomain {
	return &reportDomain{
		reportRepo:        reportRepo,
		rewardLedger:      reward.NewLedger(coinRepo, profileRepo, rewardLogRepo),
		adminVerifier:     common.NewAdminVerifier(adminRoleRepo),
		validatorEndpoint: validatorEndpoint,
		publisher:         publisher,
	}
}

func (d *reportDomain) Create(
	ctx context.Context, req *model.CreateReportRequest,
) (*model.CreateReportResponse, error) {
	if req.Title == "" || req.Description == "" {
		return nil, errorx.New(errorx.BadRequest, "Title and description are required")
	}

	if len(req.Title) < 3 || len(req.Title) > 200 {
		return nil, errorx.New(errorx.BadRequest, "Title must be between 3 and 200 characters")
	}

	if len(req.Description) > 1000 {
		return nil, errorx.New(errorx.BadRequest, "Description must be at most 1000 characters")
	}

	if req.Latitude != nil && (*req.Latitude < -90 || *req.Latitude > 90) {
		return nil, errorx.New(errorx.BadRequest, "Latitude must be between -90 and 90")
	}

	if req.Longitude != nil && (*req.Longitude < -180 || *req.Longitude > 180) {
		return nil, errorx.New(errorx.BadRequest, "Longitude must be between -180 and 180")
	}

	incidentType, err := enum.ToEnum[entity.IncidentType](req.IncidentType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid incident type %s", req.IncidentType)
	}

	severity, err := enum.ToEnum[entity.Severity](req.Severity)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid severity %s", req.Severity)
	}

	// The verdict is advisory. An unreachable validation service never
	// blocks a citizen report; it is flagged for manual review instead.
	verdict, err := d.validatorEndpoint.Validate(ctx, validator.IncidentFields{
		Title:        req.Title,
		Description:  req.Description,
		IncidentType: req.IncidentType,
		Severity:     req.Severity,
		Location:     req.Location,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot validate report: %v", err)
		verdict = validator.Verdict{Valid: true, Reason: validatorFallbackReason}
	}

	report := &entity.Report{
		Base:         entity.Base{ID: uuid.NewString()},
		UserID:       xcontext.RequestUserID(ctx),
		Title:        req.Title,
		Description:  req.Description,
		IncidentType: incidentType,
		Severity:     severity,
		Status:       entity.ReportPending,
		Location:     req.Location,
		EvidenceURLs: entity.Array[string](req.EvidenceURLs),
		AIValid:      verdict.Valid,
		AIReason:     verdict.Reason,
	}

	if req.Latitude != nil {
		report.Latitude = sql.NullFloat64{Float64: *req.Latitude, Valid: true}
	}

	if req.Longitude != nil {
		report.Longitude = sql.NullFloat64{Float64: *req.Longitude, Valid: true}
	}

	if err := d.reportRepo.Create(ctx, report); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create report: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateReportResponse{Report: model.ConvertReport(report)}, nil
}

func (d *reportDomain) Get(
	ctx context.Context, req *model.GetReportRequest,
) (*model.GetReportResponse, error) {
	report, err := d.reportRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found report")
		}

		xcontext.Logger(ctx).Errorf("Cannot get report: %v", err)
		return nil, errorx.Unknown
	}

	// A report is visible to its owner or to any admin who can read
	// reports.
	if report.UserID != xcontext.RequestUserID(ctx) {
		if err := verifyCapability(ctx, d.adminVerifier, entity.CapReadReports); err != nil {
			return nil, err
		}
	}

	return &model.GetReportResponse{Report: model.ConvertReport(report)}, nil
}

func (d *reportDomain) GetList(
	ctx context.Context, req *model.GetReportsRequest,
) (*model.GetReportsResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapReadReports); err != nil {
		return nil, err
	}

	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.GetReportsFilter{
		UserID: req.UserID,
		Offset: offset,
		Limit:  limit,
	}

	if req.Status != "" {
		filter.Status, err = enum.ToEnum[entity.ReportStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}
	}

	if req.IncidentType != "" {
		filter.IncidentType, err = enum.ToEnum[entity.IncidentType](req.IncidentType)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid incident type %s", req.IncidentType)
		}
	}

	if req.Severity != "" {
		filter.Severity, err = enum.ToEnum[entity.Severity](req.Severity)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid severity %s", req.Severity)
		}
	}

	reports, err := d.reportRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reports: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Report, 0, len(reports))
	for i := range reports {
		result = append(result, model.ConvertReport(&reports[i]))
	}

	return &model.GetReportsResponse{Reports: result}, nil
}

func (d *reportDomain) GetMyReports(
	ctx context.Context, req *model.GetMyReportsRequest,
) (*model.GetMyReportsResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	reports, err := d.reportRepo.GetList(ctx, repository.GetReportsFilter{
		UserID: xcontext.RequestUserID(ctx),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reports: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Report, 0, len(reports))
	for i := range reports {
		result = append(result, model.ConvertReport(&reports[i]))
	}

	return &model.GetMyReportsResponse{Reports: result}, nil
}

func (d *reportDomain) Update(
	ctx context.Context, req *model.UpdateReportRequest,
) (*model.UpdateReportResponse, error) {
	report, err := d.reportRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found report")
		}

		xcontext.Logger(ctx).Errorf("Cannot get report: %v", err)
		return nil, errorx.Unknown
	}

	if report.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if report.Status != entity.ReportPending {
		return nil, errorx.New(errorx.Unavailable, "Only pending reports can be edited")
	}

	err = d.reportRepo.Update(ctx, req.ID, repository.UpdateReportFilter{
		Title:        req.Title,
		Description:  req.Description,
		EvidenceURLs: req.EvidenceURLs,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update report: %v", err)
		return nil, errorx.Unknown
	}

	report, err = d.reportRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get updated report: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateReportResponse{Report: model.ConvertReport(report)}, nil
}

func (d *reportDomain) Delete(
	ctx context.Context, req *model.DeleteReportRequest,
) (*model.DeleteReportResponse, error) {
	report, err := d.reportRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found report")
		}

		xcontext.Logger(ctx).Errorf("Cannot get report: %v", err)
		return nil, errorx.Unknown
	}

	if report.UserID != xcontext.RequestUserID(ctx) {
		if err := verifyCapability(ctx, d.adminVerifier, entity.CapModerateReports); err != nil {
			return nil, err
		}
	}

	// A resolved report has paid its reward; the record stays.
	if report.Status == entity.ReportResolved {
		return nil, errorx.New(errorx.Unavailable, "Resolved reports cannot be deleted")
	}

	if err := d.reportRepo.Delete(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete report: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteReportResponse{}, nil
}

// Review moves a pending report to its final status and pays the reporter.
// The status transition and the reward land in one transaction; the
// pending-only conditional update guarantees at most one reviewer wins, so
// a report can never be paid twice.
func (d *reportDomain) Review(
	ctx context.Context, req *model.ReviewReportRequest,
) (*model.ReviewReportResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapModerateReports); err != nil {
		return nil, err
	}

	status, err := enum.ToEnum[entity.ReportStatus](req.Status)
	if err != nil || status == entity.ReportPending {
		return nil, errorx.New(errorx.BadRequest, "Invalid review status %s", req.Status)
	}

	report, err := d.reportRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found report")
		}

		xcontext.Logger(ctx).Errorf("Cannot get report: %v", err)
		return nil, errorx.Unknown
	}

	reviewerID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	won, err := d.reportRepo.UpdateReviewFromPending(ctx, req.ID, status, reviewerID, req.AdminNotes)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update report status: %v", err)
		return nil, errorx.Unknown
	}

	if !won {
		return nil, errorx.New(errorx.ReviewConflict, "This report has already been reviewed")
	}

	// Dismissed reports pay nothing.
	var coins uint64
	if status != entity.ReportDismissed {
		coins = reward.CoinsForSeverity(report.Severity)
		err = d.rewardLedger.Apply(ctx, report.UserID, coins, reward.ReasonReportReward, report.ID)
		if err != nil {
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.publishReviewed(ctx, report, status, reviewerID, coins)

	report, err = d.reportRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reviewed report: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReviewReportResponse{
		Report:      model.ConvertReport(report),
		CoinsEarned: coins,
	}, nil
}

func (d *reportDomain) publishReviewed(
	ctx context.Context,
	report *entity.Report,
	status entity.ReportStatus,
	reviewerID string,
	coins uint64,
) {
	b, err := json.Marshal(ReportReviewedEvent{
		ReportID:    report.ID,
		ReporterID:  report.UserID,
		ReviewerID:  reviewerID,
		Status:      string(status),
		Severity:    string(report.Severity),
		CoinsEarned: coins,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal review event: %v", err)
		return
	}

	err = d.publisher.Publish(ctx, ReportReviewedTopic, &pubsub.Pack{
		Key: []byte(report.ID),
		Msg: b,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish review event: %v", err)
	}
}

func (d *reportDomain) GetStats(
	ctx context.Context, req *model.GetReportStatsRequest,
) (*model.GetReportStatsResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapViewAnalytics); err != nil {
		return nil, err
	}

	total, err := d.reportRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count reports: %v", err)
		return nil, errorx.Unknown
	}

	byStatus, err := d.reportRepo.CountByStatus(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count reports by status: %v", err)
		return nil, errorx.Unknown
	}

	bySeverity, err := d.reportRepo.CountBySeverity(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count reports by severity: %v", err)
		return nil, errorx.Unknown
	}

	byType, err := d.reportRepo.CountByType(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count reports by type: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetReportStatsResponse{
		Total:      total,
		ByStatus:   map[string]int64{},
		BySeverity: map[string]int64{},
		ByType:     map[string]int64{},
	}

	for _, c := range byStatus {
		resp.ByStatus[string(c.Status)] = c.Count
	}

	for _, c := range bySeverity {
		resp.BySeverity[string(c.Severity)] = c.Count
	}

	for _, c := range byType {
		resp.ByType[string(c.IncidentType)] = c.Count
	}

	return resp, nil
}
