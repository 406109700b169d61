package model

type CreateReportRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	IncidentType string   `json:"incident_type"`
	Severity     string   `json:"severity"`
	Location     string   `json:"location"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	EvidenceURLs []string `json:"evidence_urls"`
}

type CreateReportResponse struct {
	Report Report `json:"report"`
}

type GetReportsRequest struct {
	Status       string `json:"status"`
	IncidentType string `json:"incident_type"`
	Severity     string `json:"severity"`
	UserID       string `json:"user_id"`
	Limit        int    `json:"limit"`
	Offset       int    `json:"offset"`
}

type GetReportsResponse struct {
	Reports []Report `json:"reports"`
}

type GetReportRequest struct {
	ID string `json:"id"`
}

type GetReportResponse struct {
	Report Report `json:"report"`
}

type GetMyReportsRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type GetMyReportsResponse struct {
	Reports []Report `json:"reports"`
}

type UpdateReportRequest struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	EvidenceURLs []string `json:"evidence_urls"`
}

type UpdateReportResponse struct {
	Report Report `json:"report"`
}

type DeleteReportRequest struct {
	ID string `json:"id"`
}

type DeleteReportResponse struct{}

type ReviewReportRequest struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes"`
}

type ReviewReportResponse struct {
	Report      Report `json:"report"`
	CoinsEarned uint64 `json:"coins_earned"`
}

type GetReportStatsRequest struct{}

type GetReportStatsResponse struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	BySeverity map[string]int64 `json:"by_severity"`
	ByType     map[string]int64 `json:"by_type"`
}

type UploadEvidenceRequest struct{}

type UploadEvidenceResponse struct {
	URL string `json:"url"`
}

type UploadAvatarRequest struct{}

type UploadAvatarResponse struct {
	URLs []string `json:"urls"`
}
