package store

import "github.com/umalmyha/fieldops/internal/model"

// CustomerStats returns per-customer job count and paid amount in customer creation order
func (s *Store) CustomerStats() []model.CustomerStat {
	return s.customerStats.get()
}

// DashboardStats returns store-wide aggregates
func (s *Store) DashboardStats() *model.DashboardStats {
	return s.dashboardStats.get()
}
