package model

type CreateAdminRoleRequest struct {
	UserID      string   `json:"user_id"`
	RoleType    string   `json:"role_type"`
	Permissions []string `json:"permissions"`
	AdminNotes  string   `json:"admin_notes"`
}

type CreateAdminRoleResponse struct {
	AdminRole AdminRole `json:"admin_role"`
}

type GetAdminRolesRequest struct {
	VerificationStatus string `json:"verification_status"`
	Limit              int    `json:"limit"`
	Offset             int    `json:"offset"`
}

type GetAdminRolesResponse struct {
	AdminRoles []AdminRole `json:"admin_roles"`
}

type ReviewAdminRoleRequest struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes"`
}

type ReviewAdminRoleResponse struct {
	AdminRole AdminRole `json:"admin_role"`
}

type DeleteAdminRoleRequest struct {
	ID string `json:"id"`
}

type DeleteAdminRoleResponse struct{}

type GetSystemStatsRequest struct{}

type GetSystemStatsResponse struct {
	TotalUsers   int64 `json:"total_users"`
	TotalReports int64 `json:"total_reports"`
	TotalCourses int64 `json:"total_courses"`
	TotalQuizzes int64 `json:"total_quizzes"`

	ReportsByStatus   map[string]int64 `json:"reports_by_status"`
	ReportsBySeverity map[string]int64 `json:"reports_by_severity"`
	ReportsByType     map[string]int64 `json:"reports_by_type"`
	RecentReports     int64            `json:"recent_reports"`
}
