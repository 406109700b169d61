package reward

import "github.com/mangrove-guardian/backend/internal/entity"

// SignupCoinGrant is the welcome balance of every new account. It is
// granted outside the ledger, so reconciliation expects a user's balance to
// equal this grant plus the sum of their ledger entries.
const SignupCoinGrant = 100

// Severity payouts for an accepted incident report, in coins.
const (
	coinsLow      = 15
	coinsMedium   = 30
	coinsHigh     = 50
	coinsCritical = 75

	// Paid when a report carries a severity outside the known scale.
	coinsUnknownSeverity = 25
)

// CoinsForSeverity maps a report's severity to its coin payout. Payouts
// grow with severity so the reward always reflects how urgent the incident
// was judged at submission time.
func CoinsForSeverity(severity entity.Severity) uint64 {
	switch severity {
	case entity.SeverityLow:
		return coinsLow
	case entity.SeverityMedium:
		return coinsMedium
	case entity.SeverityHigh:
		return coinsHigh
	case entity.SeverityCritical:
		return coinsCritical
	default:
		return coinsUnknownSeverity
	}
}

// PointsForQuizPercentage maps a quiz percentage to profile points. Every
// completed attempt earns at least the floor band.
func PointsForQuizPercentage(percentage int) uint64 {
	switch {
	case percentage >= 90:
		return 50
	case percentage >= 80:
		return 40
	case percentage >= 70:
		return 30
	case percentage >= 60:
		return 20
	default:
		return 10
	}
}

// Percentage computes the integer percentage of correct answers, truncated
// toward zero. A quiz with no questions scores zero.
func Percentage(score, totalQuestions int) int {
	if totalQuestions <= 0 {
		return 0
	}

	return score * 100 / totalQuestions
}
