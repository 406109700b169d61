package entity

import "database/sql"

type User struct {
	Base
	Email        string `gorm:"unique"`
	PasswordHash string
	Banned       bool
	BanReason    sql.NullString
}

// Profile holds the public-facing state of a user. The is_admin flag is
// denormalized from AdminRole existence and repaired by the reconcile job if
// the paired writes ever diverge.
type Profile struct {
	Base
	UserID      string `gorm:"unique"`
	User        User   `gorm:"foreignKey:UserID"`
	DisplayName string
	Country     string
	AvatarURL   string
	Points      uint64
	Rank        sql.NullInt64
	IsAdmin     bool
}

// Coin is the spendable balance, incremented by reward application and never
// written with read-modify-write.
type Coin struct {
	Base
	UserID  string `gorm:"unique"`
	User    User   `gorm:"foreignKey:UserID"`
	Balance uint64
}
