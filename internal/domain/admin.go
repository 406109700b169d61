package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mangrove-guardian/backend/internal/common"
	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/internal/model"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/enum"
	"github.com/mangrove-guardian/backend/pkg/errorx"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

var knownCapabilities = []string{
	entity.CapReadReports,
	entity.CapManageUsers,
	entity.CapViewAnalytics,
	entity.CapManageAdmins,
	entity.CapManageContent,
	entity.CapModerateReports,
}

// How far back GetSystemStats counts "recent" reports.
const recentReportWindow = 7 * 24 * time.Hour

type AdminDomain interface {
	CreateAdminRole(context.Context, *model.CreateAdminRoleRequest) (*model.CreateAdminRoleResponse, error)
	GetAdminRoles(context.Context, *model.GetAdminRolesRequest) (*model.GetAdminRolesResponse, error)
	ReviewAdminRole(context.Context, *model.ReviewAdminRoleRequest) (*model.ReviewAdminRoleResponse, error)
	DeleteAdminRole(context.Context, *model.DeleteAdminRoleRequest) (*model.DeleteAdminRoleResponse, error)
	GetSystemStats(context.Context, *model.GetSystemStatsRequest) (*model.GetSystemStatsResponse, error)
}

type adminDomain struct {
	adminRoleRepo repository.AdminRoleRepository
	userRepo      repository.UserRepository
	profileRepo   repository.ProfileRepository
	reportRepo    repository.ReportRepository
	courseRepo    repository.CourseRepository
	quizRepo      repository.QuizRepository
	adminVerifier *common.AdminVerifier
}

func NewAdminDomain(
	adminRoleRepo repository.AdminRoleRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	reportRepo repository.ReportRepository,
	courseRepo repository.CourseRepository,
	quizRepo repository.QuizRepository,
) *adminDomain {
	return &adminDomain{
		adminRoleRepo: adminRoleRepo,
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		reportRepo:    reportRepo,
		courseRepo:    courseRepo,
		quizRepo:      quizRepo,
		adminVerifier: common.NewAdminVerifier(adminRoleRepo),
	}
}

func (d *adminDomain) CreateAdminRole(
	ctx context.Context, req *model.CreateAdminRoleRequest,
) (*model.CreateAdminRoleResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapManageAdmins); err != nil {
		return nil, err
	}

	roleType, err := enum.ToEnum[entity.AdminRoleType](req.RoleType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid role type %s", req.RoleType)
	}

	for _, p := range req.Permissions {
		if !slices.Contains(knownCapabilities, p) {
			return nil, errorx.New(errorx.BadRequest, "Unknown permission %s", p)
		}
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.adminRoleRepo.GetByUserID(ctx, req.UserID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This user already has an admin role")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing role: %v", err)
		return nil, errorx.Unknown
	}

	// A role granted by a super admin takes effect at once. The role and
	// the profile's is_admin flag are written in the same transaction so
	// the grantee can act immediately.
	creatorID := xcontext.RequestUserID(ctx)
	role := &entity.AdminRole{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      req.UserID,
		RoleType:    roleType,
		Permissions: entity.Array[string](req.Permissions),
		IsActive:    true,
		AdminNotes:  req.AdminNotes,
	}
	role.CreatedBy.String = creatorID
	role.CreatedBy.Valid = true
	role.Approve(creatorID, time.Now())

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.adminRoleRepo.Create(ctx, role); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create admin role: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.profileRepo.SetAdminFlag(ctx, req.UserID, true); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set admin flag: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.CreateAdminRoleResponse{AdminRole: model.ConvertAdminRole(role)}, nil
}

func (d *adminDomain) GetAdminRoles(
	ctx context.Context, req *model.GetAdminRolesRequest,
) (*model.GetAdminRolesResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapManageAdmins); err != nil {
		return nil, err
	}

	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.GetAdminRolesFilter{Offset: offset, Limit: limit}
	if req.VerificationStatus != "" {
		filter.VerificationStatus, err = enum.ToEnum[entity.VerificationStatus](req.VerificationStatus)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid verification status %s", req.VerificationStatus)
		}
	}

	roles, err := d.adminRoleRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get admin roles: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.AdminRole, 0, len(roles))
	for i := range roles {
		result = append(result, model.ConvertAdminRole(&roles[i]))
	}

	return &model.GetAdminRolesResponse{AdminRoles: result}, nil
}

// ReviewAdminRole settles a pending role request. On approval, the role
// activation and the profile's is_admin flag are written in the same
// transaction so the two views of adminship never diverge.
func (d *adminDomain) ReviewAdminRole(
	ctx context.Context, req *model.ReviewAdminRoleRequest,
) (*model.ReviewAdminRoleResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapManageAdmins); err != nil {
		return nil, err
	}

	status, err := enum.ToEnum[entity.VerificationStatus](req.Status)
	if err != nil || status == entity.VerificationPending {
		return nil, errorx.New(errorx.BadRequest, "Invalid review status %s", req.Status)
	}

	role, err := d.adminRoleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found admin role")
		}

		xcontext.Logger(ctx).Errorf("Cannot get admin role: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	reviewerID := xcontext.RequestUserID(ctx)
	err = d.adminRoleRepo.UpdateReview(ctx, req.ID, status, reviewerID, time.Now(), req.AdminNotes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.ReviewConflict, "This role has already been reviewed")
		}

		xcontext.Logger(ctx).Errorf("Cannot update admin role review: %v", err)
		return nil, errorx.Unknown
	}

	if status == entity.VerificationApproved {
		if err := d.profileRepo.SetAdminFlag(ctx, role.UserID, true); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot set admin flag: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	role, err = d.adminRoleRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reviewed admin role: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReviewAdminRoleResponse{AdminRole: model.ConvertAdminRole(role)}, nil
}

// DeleteAdminRole revokes a role. The role row and the profile's is_admin
// flag go down together.
func (d *adminDomain) DeleteAdminRole(
	ctx context.Context, req *model.DeleteAdminRoleRequest,
) (*model.DeleteAdminRoleResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapManageAdmins); err != nil {
		return nil, err
	}

	role, err := d.adminRoleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found admin role")
		}

		xcontext.Logger(ctx).Errorf("Cannot get admin role: %v", err)
		return nil, errorx.Unknown
	}

	if role.UserID == xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.BadRequest, "Cannot delete your own role")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.adminRoleRepo.Delete(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete admin role: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.profileRepo.SetAdminFlag(ctx, role.UserID, false); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot clear admin flag: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.DeleteAdminRoleResponse{}, nil
}

func (d *adminDomain) GetSystemStats(
	ctx context.Context, req *model.GetSystemStatsRequest,
) (*model.GetSystemStatsResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapViewAnalytics); err != nil {
		return nil, err
	}

	totalUsers, err := d.userRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	totalReports, err := d.reportRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count reports: %v", err)
		return nil, errorx.Unknown
	}

	totalCourses, err := d.courseRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count courses: %v", err)
		return nil, errorx.Unknown
	}

	totalQuizzes, err := d.quizRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count quizzes: %v", err)
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

	recent, err := d.reportRepo.CountSince(ctx, time.Now().Add(-recentReportWindow))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count recent reports: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetSystemStatsResponse{
		TotalUsers:        totalUsers,
		TotalReports:      totalReports,
		TotalCourses:      totalCourses,
		TotalQuizzes:      totalQuizzes,
		ReportsByStatus:   map[string]int64{},
		ReportsBySeverity: map[string]int64{},
		ReportsByType:     map[string]int64{},
		RecentReports:     recent,
	}

	for _, c := range byStatus {
		resp.ReportsByStatus[string(c.Status)] = c.Count
	}

	for _, c := range bySeverity {
		resp.ReportsBySeverity[string(c.Severity)] = c.Count
	}

	for _, c := range byType {
		resp.ReportsByType[string(c.IncidentType)] = c.Count
	}

	return resp, nil
}
