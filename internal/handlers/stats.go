package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/fieldops/internal/model"
	"github.com/umalmyha/fieldops/internal/store"
)

// StatsHTTPHandler is http handler for aggregated dashboard data
type StatsHTTPHandler struct {
	store *SyncStore
}

// NewStatsHTTPHandler builds new StatsHTTPHandler
func NewStatsHTTPHandler(s *SyncStore) *StatsHTTPHandler {
	return &StatsHTTPHandler{store: s}
}

// Customers gets per-customer totals
// @Summary     Get customer stats
// @Tags        stats
// @Produce     json
// @Success     200    {array}  model.CustomerStat
// @Router      /api/stats/customers [get]
func (h *StatsHTTPHandler) Customers(c echo.Context) error {
	var stats []model.CustomerStat
	var tag string
	_ = h.store.Do(func(s *store.Store) error {
		stats = s.CustomerStats()
		tag = etag(s, "customer-stats", store.CustomerStatsDeps...)
		return nil
	})
	return snapshot(c, tag, stats)
}

// Dashboard gets store-wide totals
// @Summary     Get dashboard stats
// @Tags        stats
// @Produce     json
// @Success     200    {object} model.DashboardStats
// @Router      /api/stats/dashboard [get]
func (h *StatsHTTPHandler) Dashboard(c echo.Context) error {
	var stats *model.DashboardStats
	var tag string
	_ = h.store.Do(func(s *store.Store) error {
		stats = s.DashboardStats()
		tag = etag(s, "dashboard-stats", store.DashboardStatsDeps...)
		return nil
	})
	return snapshot(c, tag, stats)
}

// Views gets cache usage of derived views
// @Summary     Get derived view cache stats
// @Tags        stats
// @Produce     json
// @Success     200    {array}  store.ViewStat
// @Router      /api/stats/views [get]
func (h *StatsHTTPHandler) Views(c echo.Context) error {
	var stats []store.ViewStat
	_ = h.store.Do(func(s *store.Store) error {
		stats = s.ViewStats()
		return nil
	})
	return respond(c, http.StatusOK, stats)
}
