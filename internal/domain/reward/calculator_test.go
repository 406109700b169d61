package reward

import (
	"testing"

	"github.com/mangrove-guardian/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func Test_CoinsForSeverity(t *testing.T) {
	require.Equal(t, uint64(15), CoinsForSeverity(entity.SeverityLow))
	require.Equal(t, uint64(30), CoinsForSeverity(entity.SeverityMedium))
	require.Equal(t, uint64(50), CoinsForSeverity(entity.SeverityHigh))
	require.Equal(t, uint64(75), CoinsForSeverity(entity.SeverityCritical))

	// A severity outside the known scale still pays something.
	require.Equal(t, uint64(25), CoinsForSeverity(entity.Severity("catastrophic")))
}

func Test_CoinsForSeverity_GrowsWithSeverity(t *testing.T) {
	ordered := []entity.Severity{
		entity.SeverityLow,
		entity.SeverityMedium,
		entity.SeverityHigh,
		entity.SeverityCritical,
	}

	for i := 1; i < len(ordered); i++ {
		require.Greater(t, CoinsForSeverity(ordered[i]), CoinsForSeverity(ordered[i-1]))
	}
}

func Test_PointsForQuizPercentage(t *testing.T) {
	testCases := []struct {
		percentage int
		expected   uint64
	}{
		{100, 50},
		{90, 50},
		{89, 40},
		{80, 40},
		{79, 30},
		{70, 30},
		{69, 20},
		{60, 20},
		{59, 10},
		{0, 10},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.expected, PointsForQuizPercentage(tc.percentage),
			"percentage %d", tc.percentage)
	}
}

func Test_Percentage(t *testing.T) {
	require.Equal(t, 90, Percentage(9, 10))
	require.Equal(t, 100, Percentage(10, 10))
	require.Equal(t, 0, Percentage(0, 10))

	// Truncated toward zero, never rounded up.
	require.Equal(t, 66, Percentage(2, 3))

	// A quiz with no questions scores zero.
	require.Equal(t, 0, Percentage(5, 0))
	require.Equal(t, 0, Percentage(5, -1))
}
