package dto

// DashboardStatsDTO is the technician dashboard payload.
type DashboardStatsDTO struct {
	TotalInterventions     int            `json:"total_interventions"`
	StatusCounts           map[string]int `json:"status_counts"`
	MyTraitementsCount     int            `json:"my_traitements_count"`
	MyTreatedInterventions int            `json:"my_treated_interventions"`
}
