package main

import (
	"errors"
	"time"

	"github.com/mangrove-guardian/backend/internal/common"
	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/migration"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.loadConfig()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.loadRepos()

	if err := migration.AutoMigrate(s.ctx); err != nil {
		return err
	}

	// The first super admin cannot be approved through the api because no
	// approver exists yet. Bootstrap one from the environment when given.
	if email := getEnv("SUPER_ADMIN_EMAIL", ""); email != "" {
		if err := s.bootstrapSuperAdmin(email); err != nil {
			return err
		}
	}

	return nil
}

func (s *srv) bootstrapSuperAdmin(email string) error {
	user, err := s.userRepo.GetByEmail(s.ctx, email)
	if err != nil {
		return err
	}

	_, err = s.adminRoleRepo.GetByUserID(s.ctx, user.ID)
	if err == nil {
		xcontext.Logger(s.ctx).Infof("User %s already has an admin role", email)
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	role := &entity.AdminRole{
		Base:               entity.Base{ID: uuid.NewString()},
		UserID:             user.ID,
		RoleType:           entity.RoleSuperAdmin,
		VerificationStatus: entity.VerificationPending,
		Permissions:        entity.Array[string](common.DefaultPermissions(entity.RoleSuperAdmin)),
		IsActive:           true,
	}
	role.Approve(user.ID, time.Now())

	if err := s.adminRoleRepo.Create(s.ctx, role); err != nil {
		return err
	}

	if err := s.profileRepo.SetAdminFlag(s.ctx, user.ID, true); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Bootstrapped super admin for %s", email)
	return nil
}
