package entity

import (
	"database/sql"

	"github.com/mangrove-guardian/backend/pkg/enum"
)

type IncidentType string

var (
	Deforestation  = enum.New(IncidentType("Deforestation"))
	Pollution      = enum.New(IncidentType("Pollution"))
	IllegalFishing = enum.New(IncidentType("Illegal Fishing"))
	ClimateImpact  = enum.New(IncidentType("Climate Impact"))
	OtherIncident  = enum.New(IncidentType("Other"))
)

type Severity string

var (
	SeverityLow      = enum.New(Severity("Low"))
	SeverityMedium   = enum.New(Severity("Medium"))
	SeverityHigh     = enum.New(Severity("High"))
	SeverityCritical = enum.New(Severity("Critical"))
)

type ReportStatus string

var (
	ReportPending       = enum.New(ReportStatus("Pending"))
	ReportInvestigating = enum.New(ReportStatus("Investigating"))
	ReportResolved      = enum.New(ReportStatus("Resolved"))
	ReportDismissed     = enum.New(ReportStatus("Dismissed"))
)

type Report struct {
	Base
	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Title        string
	Description  string
	IncidentType IncidentType
	Severity     Severity
	Status       ReportStatus `gorm:"index"`

	Location     string
	Latitude     sql.NullFloat64
	Longitude    sql.NullFloat64
	EvidenceURLs Array[string]

	// Verdict of the AI validation call made at submission time.
	AIValid  bool
	AIReason string

	ReviewerID sql.NullString
	AdminNotes string
}
