package validator

import "context"

// IncidentFields is what the validation service sees of a new report.
type IncidentFields struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	IncidentType string `json:"incident_type"`
	Severity     string `json:"severity"`
	Location     string `json:"location"`
}

// Verdict is the validation service's judgement of a submitted report.
type Verdict struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

type IEndpoint interface {
	Validate(ctx context.Context, fields IncidentFields) (Verdict, error)
}
