package model

import "time"

const DefaultTimeLayout string = time.RFC3339Nano

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name"`
	Country     string `json:"country"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Points      uint64 `json:"points"`
	Rank        int64  `json:"rank,omitempty"`
	IsAdmin     bool   `json:"is_admin"`
	Banned      bool   `json:"banned,omitempty"`
	BanReason   string `json:"ban_reason,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type Report struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	IncidentType string   `json:"incident_type"`
	Severity     string   `json:"severity"`
	Status       string   `json:"status"`
	Location     string   `json:"location,omitempty"`
	Latitude     float64  `json:"latitude,omitempty"`
	Longitude    float64  `json:"longitude,omitempty"`
	EvidenceURLs []string `json:"evidence_urls,omitempty"`
	AIValid      bool     `json:"ai_valid"`
	AIReason     string   `json:"ai_reason,omitempty"`
	AdminNotes   string   `json:"admin_notes,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

type AdminRole struct {
	ID                 string   `json:"id"`
	UserID             string   `json:"user_id"`
	RoleType           string   `json:"role_type"`
	VerificationStatus string   `json:"verification_status"`
	Permissions        []string `json:"permissions"`
	IsActive           bool     `json:"is_active"`
	ApprovedBy         string   `json:"approved_by,omitempty"`
	ApprovedAt         string   `json:"approved_at,omitempty"`
	AdminNotes         string   `json:"admin_notes,omitempty"`
	CreatedAt          string   `json:"created_at"`
}

type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Difficulty  string `json:"difficulty"`
	Duration    string `json:"duration,omitempty"`
	Lessons     int    `json:"lessons"`
}

type Quiz struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	Questions  int    `json:"questions"`
}

type Guide struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content,omitempty"`
}

type QuizScore struct {
	ID             string `json:"id"`
	QuizID         string `json:"quiz_id"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	CompletedAt    string `json:"completed_at"`
}
