// Package store is in-memory data layer of the dashboard. It keeps customers, jobs,
// team members, invoices and notifications, validates every mutation, notifies
// subscribers after data changes and serves snapshots which keep their identity
// until data they are built from changes.
//
// Store is single-threaded: all methods must be called from one goroutine or under
// caller's lock. Returned slices and pointers are shared snapshots and must not be modified.
package store

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/fieldops/internal/bus"
	apperrors "github.com/umalmyha/fieldops/internal/errors"
	"github.com/umalmyha/fieldops/internal/model"
	"github.com/umalmyha/fieldops/internal/validation"
)

const (
	entityCustomer     = "customer"
	entityJob          = "job"
	entityTeamMember   = "team member"
	entityInvoice      = "invoice"
	entityNotification = "notification"
)

const defaultInvoiceTerm = 30 * 24 * time.Hour

// Option configures Store
type Option func(*Store)

// WithClock sets source of creation timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets source of record identifiers
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// WithLogger sets logger, by default store logs nothing
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithValidator sets validator used for mutation input
func WithValidator(v *validation.Validator) Option {
	return func(s *Store) {
		s.validator = v
	}
}

// Store is relational in-memory store with change notifications
type Store struct {
	customers     *table[model.Customer]
	jobs          *table[model.Job]
	team          *table[model.TeamMember]
	invoices      *table[model.Invoice]
	notifications *table[model.Notification]

	bus      *bus.Bus
	versions map[bus.DataKey]uint64

	views          []derivedView
	dependents     map[bus.DataKey][]derivedView
	technicians    *view[[]model.TeamMember]
	customerStats  *view[[]model.CustomerStat]
	dashboardStats *view[*model.DashboardStats]
	recentJobs     *keyedView[int, []model.Job]
	unreadCount    *view[int]

	validator *validation.Validator
	now       func() time.Time
	newID     func() string
	log       logrus.FieldLogger
}

// New builds empty Store
func New(opts ...Option) *Store {
	s := &Store{
		customers:     newTable[model.Customer](),
		jobs:          newTable[model.Job](),
		team:          newTable[model.TeamMember](),
		invoices:      newTable[model.Invoice](),
		notifications: newTable[model.Notification](),
		bus:           bus.New(),
		versions:      make(map[bus.DataKey]uint64),
		now:           func() time.Time { return time.Now().UTC() },
		newID:         uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}

	if s.validator == nil {
		s.validator = validation.MustNew()
	}

	s.initViews()
	return s
}

// Subscribe registers callback invoked after every change of data behind key.
// Callback must not mutate store. Returned function cancels subscription and is idempotent.
func (s *Store) Subscribe(key bus.DataKey, fn func()) func() {
	return s.bus.Subscribe(key, fn)
}

// Version returns number of change notifications published for key so far
func (s *Store) Version(key bus.DataKey) uint64 {
	return s.versions[key]
}

// ViewStats returns cache usage of derived views
func (s *Store) ViewStats() []ViewStat {
	stats := make([]ViewStat, 0, len(s.views))
	for _, v := range s.views {
		stats = append(stats, v.stat())
	}
	return stats
}

// Reset drops all records and cached views, subscriptions are kept
func (s *Store) Reset() {
	s.mustNotDeliver()

	s.customers.reset()
	s.jobs.reset()
	s.team.reset()
	s.invoices.reset()
	s.notifications.reset()

	s.commit(bus.CollectionKeys()...)
}

func (s *Store) mustNotDeliver() {
	if s.bus.Delivering() {
		panic(apperrors.ErrReentrantMutation)
	}
}

// commit runs after tables were changed: drops dependent views, bumps versions
// and publishes keys in given order followed by bus.All
func (s *Store) commit(keys ...bus.DataKey) {
	ordered := bus.Ordered(keys...)
	s.invalidateViews(ordered...)
	for _, key := range ordered {
		s.versions[key]++
	}
	s.bus.Publish(ordered...)
}

func (s *Store) validate(in any) error {
	return s.validator.Struct(in)
}

func (s *Store) today() string {
	return s.now().Format(model.DateLayout)
}

func notFound(entity string, id string) error {
	return apperrors.NewEntryNotFoundErr(entity, id)
}

func violation(field string, msg string) *apperrors.ValidationErr {
	return apperrors.NewValidationErr(field, msg)
}
