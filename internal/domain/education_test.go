package domain

import (
	"testing"

	"github.com/mangrove-guardian/backend/internal/model"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestEducationDomain() EducationDomain {
	return NewEducationDomain(
		repository.NewCourseRepository(),
		repository.NewQuizRepository(),
		repository.NewGuideRepository(),
		repository.NewQuizScoreRepository(),
		repository.NewCoinRepository(),
		repository.NewProfileRepository(),
		repository.NewRewardLogRepository(),
		repository.NewAdminRoleRepository(),
	)
}

func Test_educationDomain_SubmitQuizScore(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestEducationDomain()

	// 9 of 10 is 90%, the top band.
	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1)
	resp, err := d.SubmitQuizScore(userCtx, &model.SubmitQuizScoreRequest{
		QuizID: testutil.Quiz1,
		Score:  9,
	})
	require.NoError(t, err)
	require.Equal(t, 90, resp.Percentage)
	require.Equal(t, uint64(50), resp.PointsEarned)

	profile, err := repository.NewProfileRepository().GetByUserID(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, uint64(50), profile.Points)

	coin, err := repository.NewCoinRepository().GetByUserID(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, uint64(150), coin.Balance)

	// A failing attempt still earns the floor band.
	resp, err = d.SubmitQuizScore(userCtx, &model.SubmitQuizScoreRequest{
		QuizID: testutil.Quiz1,
		Score:  2,
	})
	require.NoError(t, err)
	require.Equal(t, 20, resp.Percentage)
	require.Equal(t, uint64(10), resp.PointsEarned)
}

func Test_educationDomain_SubmitQuizScore_Validation(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestEducationDomain()

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1)
	_, err := d.SubmitQuizScore(userCtx, &model.SubmitQuizScoreRequest{
		QuizID: "no-such-quiz",
		Score:  5,
	})
	require.Error(t, err)
	require.Equal(t, "Not found quiz", err.Error())

	// The quiz has 10 questions, 11 correct answers is impossible.
	_, err = d.SubmitQuizScore(userCtx, &model.SubmitQuizScoreRequest{
		QuizID: testutil.Quiz1,
		Score:  11,
	})
	require.Error(t, err)
	require.Equal(t, "Score must be between 0 and 10", err.Error())

	_, err = d.SubmitQuizScore(userCtx, &model.SubmitQuizScoreRequest{
		QuizID: testutil.Quiz1,
		Score:  -1,
	})
	require.Error(t, err)
}

func Test_educationDomain_PublicReads(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestEducationDomain()

	courses, err := d.GetCourses(ctx, &model.GetCoursesRequest{})
	require.NoError(t, err)
	require.Len(t, courses.Courses, 1)

	course, err := d.GetCourse(ctx, &model.GetCourseRequest{ID: testutil.Course1})
	require.NoError(t, err)
	require.Equal(t, "Mangrove Ecosystems 101", course.Course.Title)

	quizzes, err := d.GetQuizzes(ctx, &model.GetQuizzesRequest{Difficulty: "Beginner"})
	require.NoError(t, err)
	require.Len(t, quizzes.Quizzes, 1)

	quizzes, err = d.GetQuizzes(ctx, &model.GetQuizzesRequest{Difficulty: "Advanced"})
	require.NoError(t, err)
	require.Len(t, quizzes.Quizzes, 0)
}

func Test_educationDomain_ContentManagement(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestEducationDomain()

	// Content changes need the manage_content capability.
	_, err := d.CreateCourse(testutil.MockContextWithUserID(ctx, testutil.User1),
		&model.CreateCourseRequest{Title: "My course", Difficulty: "Beginner"})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	_, err = d.CreateCourse(testutil.MockContextWithUserID(ctx, testutil.Moderator1),
		&model.CreateCourseRequest{Title: "My course", Difficulty: "Beginner"})
	require.Error(t, err)

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin1)
	created, err := d.CreateCourse(adminCtx, &model.CreateCourseRequest{
		Title:      "Restoration in practice",
		Difficulty: "Intermediate",
		Duration:   "3h",
		Lessons:    12,
	})
	require.NoError(t, err)

	_, err = d.UpdateCourse(adminCtx, &model.UpdateCourseRequest{
		ID:    created.Course.ID,
		Title: "Restoration in practice, revised",
	})
	require.NoError(t, err)

	_, err = d.DeleteCourse(adminCtx, &model.DeleteCourseRequest{ID: created.Course.ID})
	require.NoError(t, err)

	_, err = d.GetCourse(ctx, &model.GetCourseRequest{ID: created.Course.ID})
	require.Error(t, err)
}

func Test_educationDomain_CreateQuiz_NeedsQuestions(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestEducationDomain()

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin1)
	_, err := d.CreateQuiz(adminCtx, &model.CreateQuizRequest{
		Title:      "Empty quiz",
		Difficulty: "Beginner",
		Questions:  0,
	})
	require.Error(t, err)

	resp, err := d.CreateQuiz(adminCtx, &model.CreateQuizRequest{
		Title:      "Tides and roots",
		Difficulty: "Advanced",
		Questions:  5,
	})
	require.NoError(t, err)
	require.Equal(t, 5, resp.Quiz.Questions)
}

func Test_educationDomain_Guides(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestEducationDomain()

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin1)
	created, err := d.CreateGuide(adminCtx, &model.CreateGuideRequest{
		Title:    "Reporting an oil spill",
		Category: "reporting",
		Content:  "Photograph the sheen against a fixed landmark.",
	})
	require.NoError(t, err)

	guides, err := d.GetGuides(ctx, &model.GetGuidesRequest{Category: "reporting"})
	require.NoError(t, err)
	require.Len(t, guides.Guides, 1)

	guide, err := d.GetGuide(ctx, &model.GetGuideRequest{ID: created.Guide.ID})
	require.NoError(t, err)
	require.Equal(t, "Reporting an oil spill", guide.Guide.Title)

	_, err = d.CreateGuide(testutil.MockContextWithUserID(ctx, testutil.User1),
		&model.CreateGuideRequest{Title: "nope", Category: "reporting"})
	require.Error(t, err)
}
