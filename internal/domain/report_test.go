package domain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/internal/model"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/api/validator"
	"github.com/mangrove-guardian/backend/pkg/pubsub"
	"github.com/mangrove-guardian/backend/pkg/testutil"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestReportDomain(endpoint validator.IEndpoint, publisher pubsub.Publisher) ReportDomain {
	if endpoint == nil {
		endpoint = &validator.MockEndpoint{}
	}

	if publisher == nil {
		publisher = &testutil.MockPublisher{}
	}

	return NewReportDomain(
		repository.NewReportRepository(),
		repository.NewCoinRepository(),
		repository.NewProfileRepository(),
		repository.NewRewardLogRepository(),
		repository.NewAdminRoleRepository(),
		endpoint,
		publisher,
	)
}

func Test_reportDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	endpoint := &validator.MockEndpoint{
		ValidateFunc: func(ctx context.Context, fields validator.IncidentFields) (validator.Verdict, error) {
			return validator.Verdict{Valid: false, Reason: "description too vague"}, nil
		},
	}
	d := newTestReportDomain(endpoint, nil)

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1)
	resp, err := d.Create(userCtx, &model.CreateReportRequest{
		Title:        "Trash dumped at the river mouth",
		Description:  "Household waste piling up between the roots.",
		IncidentType: "Pollution",
		Severity:     "Medium",
		Location:     "River mouth",
	})
	require.NoError(t, err)
	require.Equal(t, "Pending", resp.Report.Status)
	require.Equal(t, testutil.User1, resp.Report.UserID)

	// The verdict is advisory and recorded as-is.
	require.False(t, resp.Report.AIValid)
	require.Equal(t, "description too vague", resp.Report.AIReason)
}

func Test_reportDomain_Create_ValidatorUnreachable(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	endpoint := &validator.MockEndpoint{
		ValidateFunc: func(ctx context.Context, fields validator.IncidentFields) (validator.Verdict, error) {
			return validator.Verdict{}, errors.New("connection refused")
		},
	}
	d := newTestReportDomain(endpoint, nil)

	// An unreachable validation service never blocks a citizen report.
	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1)
	resp, err := d.Create(userCtx, &model.CreateReportRequest{
		Title:        "Nets strung across the channel",
		Description:  "Fixed gill nets blocking the full channel width.",
		IncidentType: "Illegal Fishing",
		Severity:     "High",
	})
	require.NoError(t, err)
	require.True(t, resp.Report.AIValid)
	require.Equal(t, "validation unavailable, manual review required", resp.Report.AIReason)
}

func Test_reportDomain_Create_InvalidEnums(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestReportDomain(nil, nil)

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1)
	_, err := d.Create(userCtx, &model.CreateReportRequest{
		Title:        "Something",
		Description:  "Something happened.",
		IncidentType: "Volcano",
		Severity:     "High",
	})
	require.Error(t, err)
	require.Equal(t, "Invalid incident type Volcano", err.Error())

	_, err = d.Create(userCtx, &model.CreateReportRequest{
		Title:        "Something",
		Description:  "Something happened.",
		IncidentType: "Pollution",
		Severity:     "Mild",
	})
	require.Error(t, err)
	require.Equal(t, "Invalid severity Mild", err.Error())
}

func Test_reportDomain_Create_FieldBounds(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestReportDomain(nil, nil)

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1)
	base := model.CreateReportRequest{
		Description:  "Oily film spreading along the shore.",
		IncidentType: "Pollution",
		Severity:     "Low",
	}

	short := base
	short.Title = "Oi"
	_, err := d.Create(userCtx, &short)
	require.Error(t, err)
	require.Equal(t, "Title must be between 3 and 200 characters", err.Error())

	long := base
	long.Title = strings.Repeat("a", 201)
	_, err = d.Create(userCtx, &long)
	require.Error(t, err)
	require.Equal(t, "Title must be between 3 and 200 characters", err.Error())

	verbose := base
	verbose.Title = "Oil sheen"
	verbose.Description = strings.Repeat("a", 1001)
	_, err = d.Create(userCtx, &verbose)
	require.Error(t, err)
	require.Equal(t, "Description must be at most 1000 characters", err.Error())

	badLat := base
	badLat.Title = "Oil sheen"
	lat := 90.5
	badLat.Latitude = &lat
	_, err = d.Create(userCtx, &badLat)
	require.Error(t, err)
	require.Equal(t, "Latitude must be between -90 and 90", err.Error())

	badLng := base
	badLng.Title = "Oil sheen"
	lng := -180.5
	badLng.Longitude = &lng
	_, err = d.Create(userCtx, &badLng)
	require.Error(t, err)
	require.Equal(t, "Longitude must be between -180 and 180", err.Error())
}

func Test_reportDomain_Get_OwnerOrReader(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestReportDomain(nil, nil)

	// The owner sees their own report.
	resp, err := d.Get(testutil.MockContextWithUserID(ctx, testutil.User1),
		&model.GetReportRequest{ID: testutil.Report1})
	require.NoError(t, err)
	require.Equal(t, testutil.Report1, resp.Report.ID)

	// A moderator sees everyone's reports.
	_, err = d.Get(testutil.MockContextWithUserID(ctx, testutil.Moderator1),
		&model.GetReportRequest{ID: testutil.Report1})
	require.NoError(t, err)

	// Another citizen does not.
	_, err = d.Get(testutil.MockContextWithUserID(ctx, testutil.User2),
		&model.GetReportRequest{ID: testutil.Report1})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())
}

func Test_reportDomain_Review_PaysBySeverity(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	var published *pubsub.Pack
	publisher := &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			require.Equal(t, ReportReviewedTopic, topic)
			published = pack
			return nil
		},
	}
	d := newTestReportDomain(nil, publisher)

	// Report1 is High severity, so resolving it pays 50 coins.
	modCtx := testutil.MockContextWithUserID(ctx, testutil.Moderator1)
	resp, err := d.Review(modCtx, &model.ReviewReportRequest{
		ID:         testutil.Report1,
		Status:     "Resolved",
		AdminNotes: "Confirmed on site",
	})
	require.NoError(t, err)
	require.Equal(t, "Resolved", resp.Report.Status)
	require.Equal(t, uint64(50), resp.CoinsEarned)

	coin, err := repository.NewCoinRepository().GetByUserID(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, uint64(150), coin.Balance)

	profile, err := repository.NewProfileRepository().GetByUserID(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, uint64(50), profile.Points)

	require.NotNil(t, published)
	var event ReportReviewedEvent
	require.NoError(t, json.Unmarshal(published.Msg, &event))
	require.Equal(t, testutil.Report1, event.ReportID)
	require.Equal(t, testutil.Moderator1, event.ReviewerID)
	require.Equal(t, uint64(50), event.CoinsEarned)
}

func Test_reportDomain_Review_OnlyOnce(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestReportDomain(nil, nil)

	modCtx := testutil.MockContextWithUserID(ctx, testutil.Moderator1)
	_, err := d.Review(modCtx, &model.ReviewReportRequest{
		ID:     testutil.Report1,
		Status: "Resolved",
	})
	require.NoError(t, err)

	// The second reviewer loses and the reporter is not paid again.
	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin1)
	_, err = d.Review(adminCtx, &model.ReviewReportRequest{
		ID:     testutil.Report1,
		Status: "Dismissed",
	})
	require.Error(t, err)
	require.Equal(t, "This report has already been reviewed", err.Error())

	coin, err := repository.NewCoinRepository().GetByUserID(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, uint64(150), coin.Balance)
}

func Test_reportDomain_Review_DismissedPaysNothing(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestReportDomain(nil, nil)

	modCtx := testutil.MockContextWithUserID(ctx, testutil.Moderator1)
	resp, err := d.Review(modCtx, &model.ReviewReportRequest{
		ID:         testutil.Report2,
		Status:     "Dismissed",
		AdminNotes: "Duplicate of an earlier report",
	})
	require.NoError(t, err)
	require.Equal(t, uint64(0), resp.CoinsEarned)

	coin, err := repository.NewCoinRepository().GetByUserID(ctx, testutil.User2)
	require.NoError(t, err)
	require.Equal(t, uint64(100), coin.Balance)
}

func Test_reportDomain_Review_Permissions(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestReportDomain(nil, nil)

	// A citizen cannot review, not even their own report.
	_, err := d.Review(testutil.MockContextWithUserID(ctx, testutil.User1),
		&model.ReviewReportRequest{ID: testutil.Report1, Status: "Resolved"})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	// Pending is not a review outcome.
	modCtx := testutil.MockContextWithUserID(ctx, testutil.Moderator1)
	_, err = d.Review(modCtx, &model.ReviewReportRequest{ID: testutil.Report1, Status: "Pending"})
	require.Error(t, err)
	require.Equal(t, "Invalid review status Pending", err.Error())
}

func Test_reportDomain_Update_PendingOnly(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestReportDomain(nil, nil)

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1)
	resp, err := d.Update(userCtx, &model.UpdateReportRequest{
		ID:    testutil.Report1,
		Title: "Cleared mangrove strip, now with photos",
	})
	require.NoError(t, err)
	require.Equal(t, "Cleared mangrove strip, now with photos", resp.Report.Title)

	// Only the owner can edit.
	_, err = d.Update(testutil.MockContextWithUserID(ctx, testutil.User2),
		&model.UpdateReportRequest{ID: testutil.Report1, Title: "hijacked"})
	require.Error(t, err)

	// Once reviewed, the report is frozen.
	modCtx := testutil.MockContextWithUserID(ctx, testutil.Moderator1)
	_, err = d.Review(modCtx, &model.ReviewReportRequest{ID: testutil.Report1, Status: "Resolved"})
	require.NoError(t, err)

	_, err = d.Update(userCtx, &model.UpdateReportRequest{ID: testutil.Report1, Title: "too late"})
	require.Error(t, err)
	require.Equal(t, "Only pending reports can be edited", err.Error())
}

func Test_reportDomain_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestReportDomain(nil, nil)

	// Resolving pays the reporter; afterwards the record must stay.
	modCtx := testutil.MockContextWithUserID(ctx, testutil.Moderator1)
	_, err := d.Review(modCtx, &model.ReviewReportRequest{
		ID:     testutil.Report1,
		Status: "Resolved",
	})
	require.NoError(t, err)

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1)
	_, err = d.Delete(userCtx, &model.DeleteReportRequest{ID: testutil.Report1})
	require.Error(t, err)
	require.Equal(t, "Resolved reports cannot be deleted", err.Error())

	// A still-pending report can be withdrawn by its owner.
	user2Ctx := testutil.MockContextWithUserID(ctx, testutil.User2)
	_, err = d.Delete(user2Ctx, &model.DeleteReportRequest{ID: testutil.Report2})
	require.NoError(t, err)

	_, err = d.Get(user2Ctx, &model.GetReportRequest{ID: testutil.Report2})
	require.Error(t, err)
	require.Equal(t, "Not found report", err.Error())
}

func Test_reportDomain_GetList_StoreFailureIsNotDenial(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestReportDomain(nil, nil)

	// With the role table gone, access resolution fails as infrastructure,
	// not as a 403.
	require.NoError(t, xcontext.DB(ctx).Migrator().DropTable(&entity.AdminRole{}))

	_, err := d.GetList(testutil.MockContextWithUserID(ctx, testutil.Moderator1),
		&model.GetReportsRequest{})
	require.Error(t, err)
	require.Equal(t, "Request failed", err.Error())
}

func Test_reportDomain_GetStats(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestReportDomain(nil, nil)

	// Analytics needs the view_analytics capability; moderators lack it.
	_, err := d.GetStats(testutil.MockContextWithUserID(ctx, testutil.Moderator1),
		&model.GetReportStatsRequest{})
	require.Error(t, err)

	resp, err := d.GetStats(testutil.MockContextWithUserID(ctx, testutil.Admin1),
		&model.GetReportStatsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Total)
	require.Equal(t, int64(2), resp.ByStatus["Pending"])
	require.Equal(t, int64(1), resp.BySeverity["High"])
	require.Equal(t, int64(1), resp.ByType["Pollution"])
}
