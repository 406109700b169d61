package entity

import (
	"time"

	"github.com/mangrove-guardian/backend/pkg/enum"
)

type Difficulty string

var (
	Beginner     = enum.New(Difficulty("Beginner"))
	Intermediate = enum.New(Difficulty("Intermediate"))
	Advanced     = enum.New(Difficulty("Advanced"))
)

type Course struct {
	Base
	Title       string
	Description string
	Difficulty  Difficulty
	Duration    string
	Lessons     int
}

type Quiz struct {
	Base
	Title      string
	Difficulty Difficulty
	Questions  int
}

type Guide struct {
	Base
	Title    string
	Category string
	Content  string
}

// QuizScore is append-only; a user's history of attempts is never mutated.
type QuizScore struct {
	Base
	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`
	QuizID string `gorm:"index"`
	Quiz   Quiz   `gorm:"foreignKey:QuizID"`

	Score          int
	TotalQuestions int
	CompletedAt    time.Time
}
