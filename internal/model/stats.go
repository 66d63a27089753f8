package model

// CustomerStat is per-customer aggregate over jobs and invoices
type CustomerStat struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	TotalJobs  int    `json:"totalJobs"`
	TotalSpent Money  `json:"totalSpent"`
}

// DashboardStats is store-wide aggregate shown on dashboard
type DashboardStats struct {
	TotalJobs       int   `json:"totalJobs"`
	ActiveJobs      int   `json:"activeJobs"`
	CompletedJobs   int   `json:"completedJobs"`
	TotalRevenue    Money `json:"totalRevenue"`
	PaidRevenue     Money `json:"paidRevenue"`
	PendingRevenue  Money `json:"pendingRevenue"`
	OverdueRevenue  Money `json:"overdueRevenue"`
	TechnicianCount int   `json:"technicianCount"`
	OnFieldCount    int   `json:"onFieldCount"`
	AvgJobValue     Money `json:"avgJobValue"`
}

// DeleteResult is outcome of successful delete.
// Warning is set when dependent records now hold dangling references.
type DeleteResult struct {
	Warning string `json:"warning,omitempty"`
}
