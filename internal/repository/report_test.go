package repository_test

import (
	"testing"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_reportRepository_UpdateReviewFromPending(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewReportRepository()

	won, err := repo.UpdateReviewFromPending(ctx, testutil.Report1,
		entity.ReportResolved, testutil.Moderator1, "confirmed")
	require.NoError(t, err)
	require.True(t, won)

	report, err := repo.GetByID(ctx, testutil.Report1)
	require.NoError(t, err)
	require.Equal(t, entity.ReportResolved, report.Status)
	require.Equal(t, testutil.Moderator1, report.ReviewerID.String)
	require.Equal(t, "confirmed", report.AdminNotes)

	// The report left Pending, so a second review finds nothing to win.
	won, err = repo.UpdateReviewFromPending(ctx, testutil.Report1,
		entity.ReportDismissed, testutil.Admin1, "")
	require.NoError(t, err)
	require.False(t, won)

	report, err = repo.GetByID(ctx, testutil.Report1)
	require.NoError(t, err)
	require.Equal(t, entity.ReportResolved, report.Status)
}

func Test_reportRepository_Filters(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewReportRepository()

	reports, err := repo.GetList(ctx, repository.GetReportsFilter{
		Severity: entity.SeverityHigh,
		Limit:    10,
	})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Equal(t, testutil.Report1, reports[0].ID)

	reports, err = repo.GetList(ctx, repository.GetReportsFilter{
		UserID: testutil.User2,
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Equal(t, testutil.Report2, reports[0].ID)

	counts, err := repo.CountBySeverity(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 2)
}
