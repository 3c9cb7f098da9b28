package dto

type HomepageStats struct {
	ReportsToday int64 `json:"reports_today"`
	ActiveUsers  int64 `json:"active_users"`
	TotalReports int64 `json:"total_reports"`
	TotalUsers   int64 `json:"total_users"`
}

type HomepageStatsResponse struct {
	Success bool          `json:"success"`
	Stats   HomepageStats `json:"stats"`
}

type DashboardStats struct {
	TotalReports  int64 `json:"total_reports"`
	TotalPoints   int64 `json:"total_points"`
	TotalComments int64 `json:"total_comments"`
	Rank          int64 `json:"rank"`
}

type DashboardStatsResponse struct {
	Success bool           `json:"success"`
	Stats   DashboardStats `json:"stats"`
}

type LeaderboardEntry struct {
	Username string `json:"username"`
	Points   int64  `json:"points"`
	Reports  int64  `json:"reports"`
}

type LeaderboardResponse struct {
	Success     bool               `json:"success"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// ReportStatistics aggregates report counts for the metadata endpoint.
type ReportStatistics struct {
	TotalReports    int64 `json:"total_reports"`
	VerifiedReports int64 `json:"verified_reports"`
	PendingReports  int64 `json:"pending_reports"`
	RejectedReports int64 `json:"rejected_reports"`
	UniqueUsers     int64 `json:"unique_users"`
	ReportsLast24h  int64 `json:"reports_last_24h"`
}

type TypeStatistics struct {
	TypeName      string `json:"type_name"`
	Color         string `json:"color"`
	Count         int64  `json:"count"`
	VerifiedCount int64  `json:"verified_count"`
}

// TimeSeriesPoint is one hourly bucket, formatted "2006-01-02 15:00:00".
type TimeSeriesPoint struct {
	Hour         string `json:"hour"`
	ValidReports int64  `json:"valid_reports"`
}
