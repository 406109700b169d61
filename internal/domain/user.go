package domain

import (
	"context"
	"errors"

	"github.com/mangrove-guardian/backend/internal/common"
	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/internal/model"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/errorx"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	UpdateProfile(context.Context, *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error)
	GetMyBalance(context.Context, *model.GetMyBalanceRequest) (*model.GetMyBalanceResponse, error)
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetUsers(context.Context, *model.GetUsersRequest) (*model.GetUsersResponse, error)
	GetUser(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	UpdateUser(context.Context, *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
	BanUser(context.Context, *model.BanUserRequest) (*model.BanUserResponse, error)
}

type userDomain struct {
	userRepo      repository.UserRepository
	profileRepo   repository.ProfileRepository
	coinRepo      repository.CoinRepository
	adminVerifier *common.AdminVerifier
}

func NewUserDomain(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	coinRepo repository.CoinRepository,
	adminRoleRepo repository.AdminRoleRepository,
) *userDomain {
	return &userDomain{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		coinRepo:      coinRepo,
		adminVerifier: common.NewAdminVerifier(adminRoleRepo),
	}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	profile, err := d.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get profile: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertUser(user, profile, true))
	return &resp, nil
}

func (d *userDomain) UpdateProfile(
	ctx context.Context, req *model.UpdateProfileRequest,
) (*model.UpdateProfileResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	err := d.profileRepo.Update(ctx, userID, repository.UpdateProfileFilter{
		DisplayName: req.DisplayName,
		Country:     req.Country,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update profile: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateProfileResponse{}, nil
}

func (d *userDomain) GetMyBalance(
	ctx context.Context, req *model.GetMyBalanceRequest,
) (*model.GetMyBalanceResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	coin, err := d.coinRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get coin balance: %v", err)
		return nil, errorx.Unknown
	}

	profile, err := d.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get profile: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMyBalanceResponse{
		Balance: coin.Balance,
		Points:  profile.Points,
	}, nil
}

func (d *userDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	profiles, err := d.profileRepo.GetLeaderboard(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	users := make([]model.User, 0, len(profiles))
	for i := range profiles {
		u := model.ConvertUser(nil, &profiles[i], false)
		u.Rank = int64(offset + i + 1)
		users = append(users, u)
	}

	return &model.GetLeaderboardResponse{Users: users}, nil
}

func (d *userDomain) GetUsers(
	ctx context.Context, req *model.GetUsersRequest,
) (*model.GetUsersResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapManageUsers); err != nil {
		return nil, err
	}

	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	profiles, err := d.profileRepo.GetList(ctx, req.Query, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	users := make([]model.User, 0, len(profiles))
	for i := range profiles {
		user, err := d.userRepo.GetByID(ctx, profiles[i].UserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get user of profile %s: %v", profiles[i].ID, err)
			return nil, errorx.Unknown
		}

		users = append(users, model.ConvertUser(user, &profiles[i], true))
	}

	return &model.GetUsersResponse{Users: users}, nil
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapManageUsers); err != nil {
		return nil, err
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	profile, err := d.profileRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get profile: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetUserResponse(model.ConvertUser(user, profile, true))
	return &resp, nil
}

func (d *userDomain) UpdateUser(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapManageUsers); err != nil {
		return nil, err
	}

	err := d.profileRepo.Update(ctx, req.UserID, repository.UpdateProfileFilter{
		DisplayName: req.DisplayName,
		Country:     req.Country,
		Points:      req.Points,
		Rank:        req.Rank,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateUserResponse{}, nil
}

func (d *userDomain) BanUser(
	ctx context.Context, req *model.BanUserRequest,
) (*model.BanUserResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapManageUsers); err != nil {
		return nil, err
	}

	if req.UserID == xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.BadRequest, "Cannot ban yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.SetBanned(ctx, req.UserID, req.Banned, req.Reason); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set banned flag: %v", err)
		return nil, errorx.Unknown
	}

	return &model.BanUserResponse{}, nil
}
