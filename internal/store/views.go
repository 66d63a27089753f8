package store

import (
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/fieldops/internal/bus"
	"github.com/umalmyha/fieldops/internal/model"
)

// Static dependencies of derived views. Collaborators rendering a view
// subscribe to the same keys to learn when it may have changed.
var (
	TechniciansDeps    = []bus.DataKey{bus.Team}
	CustomerStatsDeps  = []bus.DataKey{bus.Customers, bus.Jobs, bus.Invoices}
	DashboardStatsDeps = []bus.DataKey{bus.Jobs, bus.Invoices, bus.Team}
	RecentJobsDeps     = []bus.DataKey{bus.Jobs}
	UnreadCountDeps    = []bus.DataKey{bus.Notifications}
)

// ViewStat is cache usage of single derived view
type ViewStat struct {
	Name   string        `json:"name"`
	Deps   []bus.DataKey `json:"deps"`
	Hits   uint64        `json:"hits"`
	Misses uint64        `json:"misses"`
}

type derivedView interface {
	invalidate()
	stat() ViewStat
}

// view caches result of compute until invalidated
type view[T any] struct {
	name    string
	deps    []bus.DataKey
	compute func() T
	value   T
	valid   bool
	hits    uint64
	misses  uint64
	log     logrus.FieldLogger
}

func (v *view[T]) get() T {
	if v.valid {
		v.hits++
		return v.value
	}

	v.misses++
	v.value = v.compute()
	v.valid = true
	v.log.WithField("view", v.name).Debug("derived view recomputed")
	return v.value
}

func (v *view[T]) invalidate() {
	var zero T
	v.value = zero
	v.valid = false
}

func (v *view[T]) stat() ViewStat {
	return ViewStat{Name: v.name, Deps: v.deps, Hits: v.hits, Misses: v.misses}
}

// keyedView caches compute result per argument, all entries are dropped together
type keyedView[K comparable, T any] struct {
	name    string
	deps    []bus.DataKey
	compute func(K) T
	values  map[K]T
	hits    uint64
	misses  uint64
	log     logrus.FieldLogger
}

func (v *keyedView[K, T]) get(arg K) T {
	if value, ok := v.values[arg]; ok {
		v.hits++
		return value
	}

	v.misses++
	value := v.compute(arg)
	v.values[arg] = value
	v.log.WithFields(logrus.Fields{"view": v.name, "arg": arg}).Debug("derived view recomputed")
	return value
}

func (v *keyedView[K, T]) invalidate() {
	if len(v.values) > 0 {
		v.values = make(map[K]T)
	}
}

func (v *keyedView[K, T]) stat() ViewStat {
	return ViewStat{Name: v.name, Deps: v.deps, Hits: v.hits, Misses: v.misses}
}

func (s *Store) registerView(v derivedView, deps []bus.DataKey) {
	s.views = append(s.views, v)
	for _, key := range deps {
		s.dependents[key] = append(s.dependents[key], v)
	}
}

func (s *Store) initViews() {
	s.dependents = make(map[bus.DataKey][]derivedView)

	s.technicians = &view[[]model.TeamMember]{name: "technicians", deps: TechniciansDeps, compute: s.computeTechnicians, log: s.log}
	s.customerStats = &view[[]model.CustomerStat]{name: "customer-stats", deps: CustomerStatsDeps, compute: s.computeCustomerStats, log: s.log}
	s.dashboardStats = &view[*model.DashboardStats]{name: "dashboard-stats", deps: DashboardStatsDeps, compute: s.computeDashboardStats, log: s.log}
	s.recentJobs = &keyedView[int, []model.Job]{name: "recent-jobs", deps: RecentJobsDeps, compute: s.computeRecentJobs, values: make(map[int][]model.Job), log: s.log}
	s.unreadCount = &view[int]{name: "unread-notifications", deps: UnreadCountDeps, compute: s.computeUnreadCount, log: s.log}

	s.registerView(s.technicians, TechniciansDeps)
	s.registerView(s.customerStats, CustomerStatsDeps)
	s.registerView(s.dashboardStats, DashboardStatsDeps)
	s.registerView(s.recentJobs, RecentJobsDeps)
	s.registerView(s.unreadCount, UnreadCountDeps)
}

func (s *Store) invalidateViews(keys ...bus.DataKey) {
	for _, key := range keys {
		for _, v := range s.dependents[key] {
			v.invalidate()
		}
	}
}

func (s *Store) computeTechnicians() []model.TeamMember {
	technicians := make([]model.TeamMember, 0)
	s.team.each(func(m model.TeamMember) bool {
		if m.IsTechnician() {
			technicians = append(technicians, m)
		}
		return true
	})
	return technicians
}

func (s *Store) computeCustomerStats() []model.CustomerStat {
	jobsByCustomer := make(map[string]int)
	s.jobs.each(func(j model.Job) bool {
		jobsByCustomer[j.CustomerID]++
		return true
	})

	spentByCustomer := make(map[string]model.Money)
	s.invoices.each(func(i model.Invoice) bool {
		if i.Status == model.InvoicePaid {
			spentByCustomer[i.CustomerID] += i.Amount
		}
		return true
	})

	stats := make([]model.CustomerStat, 0, s.customers.len())
	s.customers.each(func(c model.Customer) bool {
		stats = append(stats, model.CustomerStat{
			CustomerID: c.ID,
			Name:       c.Name,
			TotalJobs:  jobsByCustomer[c.ID],
			TotalSpent: spentByCustomer[c.ID],
		})
		return true
	})
	return stats
}

func (s *Store) computeDashboardStats() *model.DashboardStats {
	stats := &model.DashboardStats{}

	var completedValue model.Money
	s.jobs.each(func(j model.Job) bool {
		stats.TotalJobs++
		if j.IsActive() {
			stats.ActiveJobs++
		}
		if j.Status == model.JobCompleted {
			stats.CompletedJobs++
			completedValue += j.Amount
		}
		return true
	})
	stats.AvgJobValue = completedValue.DivRound(stats.CompletedJobs)

	s.invoices.each(func(i model.Invoice) bool {
		stats.TotalRevenue += i.Amount
		switch i.Status {
		case model.InvoicePaid:
			stats.PaidRevenue += i.Amount
		case model.InvoicePending:
			stats.PendingRevenue += i.Amount
		case model.InvoiceOverdue:
			stats.OverdueRevenue += i.Amount
		}
		return true
	})

	s.team.each(func(m model.TeamMember) bool {
		if !m.IsTechnician() {
			return true
		}
		stats.TechnicianCount++
		if m.Availability == model.AvailabilityOnJob {
			stats.OnFieldCount++
		}
		return true
	})
	return stats
}

// computeRecentJobs returns jobs most recent first, non-positive limit means all jobs
func (s *Store) computeRecentJobs(limit int) []model.Job {
	all := s.jobs.all()
	n := len(all)
	if limit > 0 && limit < n {
		n = limit
	}

	recent := make([]model.Job, 0, n)
	for i := len(all) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, all[i])
	}
	return recent
}

func (s *Store) computeUnreadCount() int {
	unread := 0
	s.notifications.each(func(n model.Notification) bool {
		if !n.Read {
			unread++
		}
		return true
	})
	return unread
}
