package migration

import (
	"context"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
)

func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Profile{},
		&entity.Coin{},
		&entity.AdminRole{},
		&entity.Report{},
		&entity.Course{},
		&entity.Quiz{},
		&entity.Guide{},
		&entity.QuizScore{},
		&entity.RewardLog{},
	)
}
