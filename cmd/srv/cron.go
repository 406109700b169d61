package main

import (
	"github.com/mangrove-guardian/backend/internal/domain/cron"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.loadRepos()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Start(
		s.ctx,
		cron.NewReconcileCronJob(s.profileRepo, s.adminRoleRepo, s.coinRepo,
			s.rewardLogRepo, xcontext.Configs(s.ctx).Cron.ReconcileInterval),
	)

	return nil
}
