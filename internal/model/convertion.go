package model

import (
	"github.com/mangrove-guardian/backend/internal/entity"
)

func ConvertUser(user *entity.User, profile *entity.Profile, includeSensitive bool) User {
	if profile == nil {
		return User{}
	}

	u := User{
		ID:          profile.UserID,
		DisplayName: profile.DisplayName,
		Country:     profile.Country,
		AvatarURL:   profile.AvatarURL,
		Points:      profile.Points,
		IsAdmin:     profile.IsAdmin,
		CreatedAt:   profile.CreatedAt.Format(DefaultTimeLayout),
	}

	if profile.Rank.Valid {
		u.Rank = profile.Rank.Int64
	}

	if includeSensitive && user != nil {
		u.Email = user.Email
		u.Banned = user.Banned
		u.BanReason = user.BanReason.String
	}

	return u
}

func ConvertReport(report *entity.Report) Report {
	if report == nil {
		return Report{}
	}

	r := Report{
		ID:           report.ID,
		UserID:       report.UserID,
		Title:        report.Title,
		Description:  report.Description,
		IncidentType: string(report.IncidentType),
		Severity:     string(report.Severity),
		Status:       string(report.Status),
		Location:     report.Location,
		EvidenceURLs: report.EvidenceURLs,
		AIValid:      report.AIValid,
		AIReason:     report.AIReason,
		AdminNotes:   report.AdminNotes,
		CreatedAt:    report.CreatedAt.Format(DefaultTimeLayout),
	}

	if report.Latitude.Valid {
		r.Latitude = report.Latitude.Float64
	}

	if report.Longitude.Valid {
		r.Longitude = report.Longitude.Float64
	}

	return r
}

func ConvertAdminRole(role *entity.AdminRole) AdminRole {
	if role == nil {
		return AdminRole{}
	}

	r := AdminRole{
		ID:                 role.ID,
		UserID:             role.UserID,
		RoleType:           string(role.RoleType),
		VerificationStatus: string(role.VerificationStatus),
		Permissions:        role.Permissions,
		IsActive:           role.IsActive,
		AdminNotes:         role.AdminNotes,
		CreatedAt:          role.CreatedAt.Format(DefaultTimeLayout),
	}

	if role.ApprovedBy.Valid {
		r.ApprovedBy = role.ApprovedBy.String
	}

	if role.ApprovedAt.Valid {
		r.ApprovedAt = role.ApprovedAt.Time.Format(DefaultTimeLayout)
	}

	return r
}

func ConvertCourse(course *entity.Course) Course {
	if course == nil {
		return Course{}
	}

	return Course{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Difficulty:  string(course.Difficulty),
		Duration:    course.Duration,
		Lessons:     course.Lessons,
	}
}

func ConvertQuiz(quiz *entity.Quiz) Quiz {
	if quiz == nil {
		return Quiz{}
	}

	return Quiz{
		ID:         quiz.ID,
		Title:      quiz.Title,
		Difficulty: string(quiz.Difficulty),
		Questions:  quiz.Questions,
	}
}

func ConvertGuide(guide *entity.Guide) Guide {
	if guide == nil {
		return Guide{}
	}

	return Guide{
		ID:       guide.ID,
		Title:    guide.Title,
		Category: guide.Category,
		Content:  guide.Content,
	}
}

func ConvertQuizScore(score *entity.QuizScore) QuizScore {
	if score == nil {
		return QuizScore{}
	}

	return QuizScore{
		ID:             score.ID,
		QuizID:         score.QuizID,
		Score:          score.Score,
		TotalQuestions: score.TotalQuestions,
		CompletedAt:    score.CompletedAt.Format(DefaultTimeLayout),
	}
}
