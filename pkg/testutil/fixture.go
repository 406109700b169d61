package testutil

import (
	"context"
	"time"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/internal/repository"
)

// Fixture identities used across tests.
const (
	User1       = "user1"
	User2       = "user2"
	Moderator1  = "moderator1"
	Admin1      = "admin1"
	SuperAdmin1 = "superadmin1"
)

const (
	Report1 = "report1"
	Report2 = "report2"
	Quiz1   = "quiz1"
	Course1 = "course1"
)

// CreateFixtureDb populates the database behind ctx with a small world: two
// citizens, a moderator, an admin, a super admin, two pending reports, a
// course, and a quiz.
func CreateFixtureDb(ctx context.Context) {
	insertUsers(ctx)
	insertAdminRoles(ctx)
	insertReports(ctx)
	insertEducation(ctx)
}

func insertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	coinRepo := repository.NewCoinRepository()

	users := []struct {
		id      string
		isAdmin bool
	}{
		{User1, false},
		{User2, false},
		{Moderator1, true},
		{Admin1, true},
		{SuperAdmin1, true},
	}

	for _, u := range users {
		err := userRepo.Create(ctx, &entity.User{
			Base:         entity.Base{ID: u.id},
			Email:        u.id + "@example.com",
			PasswordHash: "not-a-real-hash",
		})
		if err != nil {
			panic(err)
		}

		err = profileRepo.Create(ctx, &entity.Profile{
			Base:        entity.Base{ID: "profile-" + u.id},
			UserID:      u.id,
			DisplayName: u.id,
			Country:     "Indonesia",
			IsAdmin:     u.isAdmin,
		})
		if err != nil {
			panic(err)
		}

		err = coinRepo.Create(ctx, &entity.Coin{
			Base:    entity.Base{ID: "coin-" + u.id},
			UserID:  u.id,
			Balance: 100,
		})
		if err != nil {
			panic(err)
		}
	}
}

func insertAdminRoles(ctx context.Context) {
	adminRoleRepo := repository.NewAdminRoleRepository()

	roles := []struct {
		userID   string
		roleType entity.AdminRoleType
	}{
		{Moderator1, entity.RoleModerator},
		{Admin1, entity.RoleAdmin},
		{SuperAdmin1, entity.RoleSuperAdmin},
	}

	for _, r := range roles {
		role := &entity.AdminRole{
			Base:               entity.Base{ID: "role-" + r.userID},
			UserID:             r.userID,
			RoleType:           r.roleType,
			VerificationStatus: entity.VerificationApproved,
			IsActive:           true,
		}
		role.Approve(SuperAdmin1, time.Now())

		if err := adminRoleRepo.Create(ctx, role); err != nil {
			panic(err)
		}
	}
}

func insertReports(ctx context.Context) {
	reportRepo := repository.NewReportRepository()

	reports := []*entity.Report{
		{
			Base:         entity.Base{ID: Report1},
			UserID:       User1,
			Title:        "Cleared mangrove strip near the east channel",
			Description:  "Roughly fifty meters of mangrove cut down overnight.",
			IncidentType: entity.Deforestation,
			Severity:     entity.SeverityHigh,
			Status:       entity.ReportPending,
			Location:     "East channel",
			AIValid:      true,
		},
		{
			Base:         entity.Base{ID: Report2},
			UserID:       User2,
			Title:        "Oil sheen along the jetty",
			Description:  "Thin film of oil drifting into the roots at low tide.",
			IncidentType: entity.Pollution,
			Severity:     entity.SeverityMedium,
			Status:       entity.ReportPending,
			Location:     "South jetty",
			AIValid:      true,
		},
	}

	for _, r := range reports {
		if err := reportRepo.Create(ctx, r); err != nil {
			panic(err)
		}
	}
}

func insertEducation(ctx context.Context) {
	courseRepo := repository.NewCourseRepository()
	quizRepo := repository.NewQuizRepository()

	err := courseRepo.Create(ctx, &entity.Course{
		Base:        entity.Base{ID: Course1},
		Title:       "Mangrove Ecosystems 101",
		Description: "Why mangroves matter and how to protect them.",
		Difficulty:  entity.Beginner,
		Duration:    "2h",
		Lessons:     8,
	})
	if err != nil {
		panic(err)
	}

	err = quizRepo.Create(ctx, &entity.Quiz{
		Base:       entity.Base{ID: Quiz1},
		Title:      "Mangrove Basics",
		Difficulty: entity.Beginner,
		Questions:  10,
	})
	if err != nil {
		panic(err)
	}
}
