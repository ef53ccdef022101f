package domain

// DiseaseCount is a disease name with the number of detections.
type DiseaseCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DashboardStats are the headline counters shown on the dashboard.
type DashboardStats struct {
	TotalUploads int            `json:"total_uploads"`
	TotalOrders  int            `json:"total_orders"`
	TotalCalls   int            `json:"total_calls"`
	TopDiseases  []DiseaseCount `json:"top_diseases"`
}

// DashboardView is the dashboard page model.
type DashboardView struct {
	DashboardStats
	DiseaseTypes int `json:"disease_types"`
}

// NewDashboardView derives the view from stats. A nil disease list is
// normalized to empty.
func NewDashboardView(s DashboardStats) DashboardView {
	if s.TopDiseases == nil {
		s.TopDiseases = []DiseaseCount{}
	}
	return DashboardView{DashboardStats: s, DiseaseTypes: len(s.TopDiseases)}
}
