package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mangrove-guardian/backend/internal/domain/reward"
	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/internal/model"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/crypto"
	"github.com/mangrove-guardian/backend/pkg/errorx"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Signup(context.Context, *model.SignupRequest) (*model.SignupResponse, error)
	Signin(context.Context, *model.SigninRequest) (*model.SigninResponse, error)
}

type authDomain struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	coinRepo    repository.CoinRepository
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	coinRepo repository.CoinRepository,
) *authDomain {
	return &authDomain{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		coinRepo:    coinRepo,
	}
}

func (d *authDomain) Signup(
	ctx context.Context, req *model.SignupRequest,
) (*model.SignupResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errorx.New(errorx.BadRequest, "Email and password are required")
	}

	if len(req.Password) < 8 {
		return nil, errorx.New(errorx.BadRequest, "Password must be at least 8 characters")
	}

	_, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This email is already registered")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check email existence: %v", err)
		return nil, errorx.Unknown
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = "Guardian-" + crypto.GenerateRandomAlphabet(6)
	}

	user := &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		Email:        req.Email,
		PasswordHash: hashed,
	}

	// The account row, the profile, and the welcome coin grant land
	// together or not at all.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	profile := &entity.Profile{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      user.ID,
		DisplayName: displayName,
		Country:     req.Country,
		Points:      0,
	}
	if err := d.profileRepo.Create(ctx, profile); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create profile: %v", err)
		return nil, errorx.Unknown
	}

	err = d.coinRepo.Create(ctx, &entity.Coin{
		Base:    entity.Base{ID: uuid.NewString()},
		UserID:  user.ID,
		Balance: reward.SignupCoinGrant,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create coin account: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.SignupResponse{
		User: model.ConvertUser(user, profile, true),
	}, nil
}

func (d *authDomain) Signin(
	ctx context.Context, req *model.SigninRequest,
) (*model.SigninResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if !crypto.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	if user.Banned {
		return nil, errorx.New(errorx.PermissionDenied, "This account has been banned")
	}

	profile, err := d.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get profile: %v", err)
		return nil, errorx.Unknown
	}

	token, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:    user.ID,
		Email: user.Email,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SigninResponse{
		User:        model.ConvertUser(user, profile, true),
		AccessToken: token,
	}, nil
}
