package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mangrove-guardian/backend/internal/common"
	"github.com/mangrove-guardian/backend/internal/domain/reward"
	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/internal/model"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/enum"
	"github.com/mangrove-guardian/backend/pkg/errorx"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type EducationDomain interface {
	GetCourses(context.Context, *model.GetCoursesRequest) (*model.GetCoursesResponse, error)
	GetCourse(context.Context, *model.GetCourseRequest) (*model.GetCourseResponse, error)
	CreateCourse(context.Context, *model.CreateCourseRequest) (*model.CreateCourseResponse, error)
	UpdateCourse(context.Context, *model.UpdateCourseRequest) (*model.UpdateCourseResponse, error)
	DeleteCourse(context.Context, *model.DeleteCourseRequest) (*model.DeleteCourseResponse, error)

	GetQuizzes(context.Context, *model.GetQuizzesRequest) (*model.GetQuizzesResponse, error)
	GetQuiz(context.Context, *model.GetQuizRequest) (*model.GetQuizResponse, error)
	CreateQuiz(context.Context, *model.CreateQuizRequest) (*model.CreateQuizResponse, error)
	UpdateQuiz(context.Context, *model.UpdateQuizRequest) (*model.UpdateQuizResponse, error)
	DeleteQuiz(context.Context, *model.DeleteQuizRequest) (*model.DeleteQuizResponse, error)

	GetGuides(context.Context, *model.GetGuidesRequest) (*model.GetGuidesResponse, error)
	GetGuide(context.Context, *model.GetGuideRequest) (*model.GetGuideResponse, error)
	CreateGuide(context.Context, *model.CreateGuideRequest) (*model.CreateGuideResponse, error)

	SubmitQuizScore(context.Context, *model.SubmitQuizScoreRequest) (*model.SubmitQuizScoreResponse, error)
}

type educationDomain struct {
	courseRepo    repository.CourseRepository
	quizRepo      repository.QuizRepository
	guideRepo     repository.GuideRepository
	quizScoreRepo repository.QuizScoreRepository
	rewardLedger  *reward.Ledger
	adminVerifier *common.AdminVerifier
}

func NewEducationDomain(
	courseRepo repository.CourseRepository,
	quizRepo repository.QuizRepository,
	guideRepo repository.GuideRepository,
	quizScoreRepo repository.QuizScoreRepository,
	coinRepo repository.CoinRepository,
	profileRepo repository.ProfileRepository,
	rewardLogRepo repository.RewardLogRepository,
	adminRoleRepo repository.AdminRoleRepository,
) *educationDomain {
	return &educationDomain{
		courseRepo:    courseRepo,
		quizRepo:      quizRepo,
		guideRepo:     guideRepo,
		quizScoreRepo: quizScoreRepo,
		rewardLedger:  reward.NewLedger(coinRepo, profileRepo, rewardLogRepo),
		adminVerifier: common.NewAdminVerifier(adminRoleRepo),
	}
}

func (d *educationDomain) GetCourses(
	ctx context.Context, req *model.GetCoursesRequest,
) (*model.GetCoursesResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.GetCoursesFilter{Offset: offset, Limit: limit}
	if req.Difficulty != "" {
		filter.Difficulty, err = enum.ToEnum[entity.Difficulty](req.Difficulty)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid difficulty %s", req.Difficulty)
		}
	}

	courses, err := d.courseRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get courses: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Course, 0, len(courses))
	for i := range courses {
		result = append(result, model.ConvertCourse(&courses[i]))
	}

	return &model.GetCoursesResponse{Courses: result}, nil
}

func (d *educationDomain) GetCourse(
	ctx context.Context, req *model.GetCourseRequest,
) (*model.GetCourseResponse, error) {
	course, err := d.courseRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found course")
		}

		xcontext.Logger(ctx).Errorf("Cannot get course: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetCourseResponse{Course: model.ConvertCourse(course)}, nil
}

func (d *educationDomain) CreateCourse(
	ctx context.Context, req *model.CreateCourseRequest,
) (*model.CreateCourseResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapManageContent); err != nil {
		return nil, err
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Title is required")
	}

	difficulty, err := enum.ToEnum[entity.Difficulty](req.Difficulty)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid difficulty %s", req.Difficulty)
	}

	course := &entity.Course{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  difficulty,
		Duration:    req.Duration,
		Lessons:     req.Lessons,
	}

	if err := d.courseRepo.Create(ctx, course); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create course: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCourseResponse{Course: model.ConvertCourse(course)}, nil
}

func (d *educationDomain) UpdateCourse(
	ctx context.Context, req *model.UpdateCourseRequest,
) (*model.UpdateCourseResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapManageContent); err != nil {
		return nil, err
	}

	filter := repository.UpdateCourseFilter{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Lessons:     req.Lessons,
	}

	if req.Difficulty != "" {
		difficulty, err := enum.ToEnum[entity.Difficulty](req.Difficulty)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid difficulty %s", req.Difficulty)
		}
		filter.Difficulty = difficulty
	}

	if err := d.courseRepo.Update(ctx, req.ID, filter); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found course")
		}

		xcontext.Logger(ctx).Errorf("Cannot update course: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateCourseResponse{}, nil
}

func (d *educationDomain) DeleteCourse(
	ctx context.Context, req *model.DeleteCourseRequest,
) (*model.DeleteCourseResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapManageContent); err != nil {
		return nil, err
	}

	if err := d.courseRepo.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found course")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete course: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCourseResponse{}, nil
}

func (d *educationDomain) GetQuizzes(
	ctx context.Context, req *model.GetQuizzesRequest,
) (*model.GetQuizzesResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.GetQuizzesFilter{Offset: offset, Limit: limit}
	if req.Difficulty != "" {
		filter.Difficulty, err = enum.ToEnum[entity.Difficulty](req.Difficulty)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid difficulty %s", req.Difficulty)
		}
	}

	quizzes, err := d.quizRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quizzes: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Quiz, 0, len(quizzes))
	for i := range quizzes {
		result = append(result, model.ConvertQuiz(&quizzes[i]))
	}

	return &model.GetQuizzesResponse{Quizzes: result}, nil
}

func (d *educationDomain) GetQuiz(
	ctx context.Context, req *model.GetQuizRequest,
) (*model.GetQuizResponse, error) {
	quiz, err := d.quizRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quiz")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quiz: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetQuizResponse{Quiz: model.ConvertQuiz(quiz)}, nil
}

func (d *educationDomain) CreateQuiz(
	ctx context.Context, req *model.CreateQuizRequest,
) (*model.CreateQuizResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapManageContent); err != nil {
		return nil, err
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Title is required")
	}

	if req.Questions <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Quiz must have at least one question")
	}

	difficulty, err := enum.ToEnum[entity.Difficulty](req.Difficulty)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid difficulty %s", req.Difficulty)
	}

	quiz := &entity.Quiz{
		Base:       entity.Base{ID: uuid.NewString()},
		Title:      req.Title,
		Difficulty: difficulty,
		Questions:  req.Questions,
	}

	if err := d.quizRepo.Create(ctx, quiz); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create quiz: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateQuizResponse{Quiz: model.ConvertQuiz(quiz)}, nil
}

func (d *educationDomain) UpdateQuiz(
	ctx context.Context, req *model.UpdateQuizRequest,
) (*model.UpdateQuizResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapManageContent); err != nil {
		return nil, err
	}

	filter := repository.UpdateQuizFilter{
		Title:     req.Title,
		Questions: req.Questions,
	}

	if req.Difficulty != "" {
		difficulty, err := enum.ToEnum[entity.Difficulty](req.Difficulty)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid difficulty %s", req.Difficulty)
		}
		filter.Difficulty = difficulty
	}

	if err := d.quizRepo.Update(ctx, req.ID, filter); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quiz")
		}

		xcontext.Logger(ctx).Errorf("Cannot update quiz: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateQuizResponse{}, nil
}

func (d *educationDomain) DeleteQuiz(
	ctx context.Context, req *model.DeleteQuizRequest,
) (*model.DeleteQuizResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapManageContent); err != nil {
		return nil, err
	}

	if err := d.quizRepo.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quiz")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete quiz: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteQuizResponse{}, nil
}

func (d *educationDomain) GetGuides(
	ctx context.Context, req *model.GetGuidesRequest,
) (*model.GetGuidesResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	guides, err := d.guideRepo.GetList(ctx, repository.GetGuidesFilter{
		Category: req.Category,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guides: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Guide, 0, len(guides))
	for i := range guides {
		result = append(result, model.ConvertGuide(&guides[i]))
	}

	return &model.GetGuidesResponse{Guides: result}, nil
}

func (d *educationDomain) GetGuide(
	ctx context.Context, req *model.GetGuideRequest,
) (*model.GetGuideResponse, error) {
	guide, err := d.guideRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found guide")
		}

		xcontext.Logger(ctx).Errorf("Cannot get guide: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetGuideResponse{Guide: model.ConvertGuide(guide)}, nil
}

func (d *educationDomain) CreateGuide(
	ctx context.Context, req *model.CreateGuideRequest,
) (*model.CreateGuideResponse, error) {
	if err := verifyCapability(ctx, d.adminVerifier, entity.CapManageContent); err != nil {
		return nil, err
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Title is required")
	}

	guide := &entity.Guide{
		Base:     entity.Base{ID: uuid.NewString()},
		Title:    req.Title,
		Category: req.Category,
		Content:  req.Content,
	}

	if err := d.guideRepo.Create(ctx, guide); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create guide: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateGuideResponse{Guide: model.ConvertGuide(guide)}, nil
}

// SubmitQuizScore records one quiz attempt and pays the points earned by
// its percentage band. The attempt row and the reward share a transaction.
func (d *educationDomain) SubmitQuizScore(
	ctx context.Context, req *model.SubmitQuizScoreRequest,
) (*model.SubmitQuizScoreResponse, error) {
	quiz, err := d.quizRepo.GetByID(ctx, req.QuizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quiz")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quiz: %v", err)
		return nil, errorx.Unknown
	}

	totalQuestions := req.TotalQuestions
	if totalQuestions == 0 {
		totalQuestions = quiz.Questions
	}

	if req.Score < 0 || req.Score > totalQuestions {
		return nil, errorx.New(errorx.BadRequest, "Score must be between 0 and %d", totalQuestions)
	}

	percentage := reward.Percentage(req.Score, totalQuestions)
	points := reward.PointsForQuizPercentage(percentage)

	score := &entity.QuizScore{
		Base:           entity.Base{ID: uuid.NewString()},
		UserID:         xcontext.RequestUserID(ctx),
		QuizID:         quiz.ID,
		Score:          req.Score,
		TotalQuestions: totalQuestions,
		CompletedAt:    time.Now(),
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.quizScoreRepo.Create(ctx, score); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create quiz score: %v", err)
		return nil, errorx.Unknown
	}

	err = d.rewardLedger.Apply(ctx, score.UserID, points, reward.ReasonQuizReward, score.ID)
	if err != nil {
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.SubmitQuizScoreResponse{
		QuizScore:    model.ConvertQuizScore(score),
		PointsEarned: points,
		Percentage:   percentage,
	}, nil
}
