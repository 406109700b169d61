package entity

// RewardLog is the append-only ledger of applied rewards. It is written in
// the same transaction as the balance and points increments, so the sum of a
// user's entries is the authoritative value both counters must agree with.
type RewardLog struct {
	Base
	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Amount uint64
	Reason string

	// SourceID refers to the report or quiz score that triggered the
	// reward, unique so a retry can never double-append.
	SourceID string `gorm:"unique"`
}
