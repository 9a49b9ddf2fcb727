package models

// DashboardStats are the admin dashboard counters.
type DashboardStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalApplications int64 `json:"totalApplications"`
	TotalPayments     int64 `json:"totalPayments"`
	PendingPayments   int64 `json:"pendingPayments"`
}
