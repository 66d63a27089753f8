package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/umalmyha/fieldops/internal/bus"
	apperrors "github.com/umalmyha/fieldops/internal/errors"
	"github.com/umalmyha/fieldops/internal/model"
)

var testBaseTime = time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

// sameSnapshot reports whether a and b are the very same snapshot, not just equal ones
func sameSnapshot[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

func ptr[T any](v T) *T {
	return &v
}

// storeFixture starts every test with one technician and one customer
type storeFixture struct {
	suite.Suite
	store *Store
	tech  model.TeamMember
	ann   model.Customer
}

func (s *storeFixture) SetupTest() {
	tick := 0
	s.store = New(WithClock(func() time.Time {
		tick++
		return testBaseTime.Add(time.Duration(tick) * time.Minute)
	}))

	var err error
	s.tech, err = s.store.AddTeamMember(model.NewTeamMember{
		Name:  "Mike Johnson",
		Email: "mike@fieldops.example",
		Role:  model.RoleTechnician,
	})
	s.Require().NoError(err, "technician must be created")

	s.ann, err = s.store.AddCustomer(model.NewCustomer{
		Name:    "Ann Lee",
		Email:   "ann@x.com",
		Phone:   "555-0101",
		Address: "1 Elm St",
	})
	s.Require().NoError(err, "customer must be created")
}

func (s *storeFixture) newJob(title string, amount int64, status model.JobStatus) model.NewJob {
	return model.NewJob{
		Title:         title,
		CustomerID:    s.ann.ID,
		AssigneeID:    s.tech.ID,
		Status:        status,
		Priority:      model.PriorityMedium,
		ScheduledDate: "2025-01-10",
		ScheduledTime: "09:00",
		Amount:        model.Dollars(amount),
	}
}

func (s *storeFixture) addJob(title string, amount int64, status model.JobStatus) model.Job {
	j, err := s.store.AddJob(s.newJob(title, amount, status))
	s.Require().NoError(err, "job must be created")
	return j
}

func (s *storeFixture) addInvoice(j model.Job, status model.InvoiceStatus) model.Invoice {
	inv, err := s.store.AddInvoice(model.NewInvoice{
		JobID:      j.ID,
		CustomerID: j.CustomerID,
		Amount:     j.Amount,
		Status:     status,
	})
	s.Require().NoError(err, "invoice must be created")
	return inv
}

// recorder subscribes to keys and records delivered keys in order
func (s *storeFixture) recorder(keys ...bus.DataKey) *[]bus.DataKey {
	delivered := make([]bus.DataKey, 0)
	for _, key := range keys {
		key := key
		s.store.Subscribe(key, func() { delivered = append(delivered, key) })
	}
	return &delivered
}

type storeTestSuite struct {
	storeFixture
}

func (s *storeTestSuite) TestAddAssignsIdentityAndDefaults() {
	s.T().Log("customer gets id, timestamp and active status")
	{
		s.Assert().NotEmpty(s.ann.ID, "id must be generated")
		s.Assert().Equal(model.CustomerActive, s.ann.Status, "status must default to active")
		s.Assert().False(s.ann.CreatedAt.IsZero(), "creation timestamp must be set")
	}

	s.T().Log("team member gets pending status and available availability")
	{
		s.Assert().Equal(model.MemberPending, s.tech.Status)
		s.Assert().Equal(model.AvailabilityAvailable, s.tech.Availability)
	}

	s.T().Log("job gets scheduled status and medium priority")
	{
		j, err := s.store.AddJob(model.NewJob{
			Title:         "Leak",
			CustomerID:    s.ann.ID,
			ScheduledDate: "2025-01-11",
			ScheduledTime: "10:30",
		})
		s.Require().NoError(err)
		s.Assert().Equal(model.JobScheduled, j.Status)
		s.Assert().Equal(model.PriorityMedium, j.Priority)
		s.Assert().Empty(j.AssigneeID, "job without assignee must be allowed")
		s.Assert().NotEqual(s.ann.ID, j.ID, "ids must be unique")
	}
}

func (s *storeTestSuite) TestReferenceStability() {
	j := s.addJob("AC Repair", 150, model.JobCompleted)
	s.addInvoice(j, model.InvoicePending)
	_, err := s.store.AddNotification(model.NewNotification{Title: "Hi", Message: "Hello", Type: model.NotificationSystem})
	s.Require().NoError(err)

	s.T().Log("repeated reads without mutation return identical snapshots")
	{
		s.Assert().True(sameSnapshot(s.store.Customers(), s.store.Customers()), "customers")
		s.Assert().True(sameSnapshot(s.store.Jobs(), s.store.Jobs()), "jobs")
		s.Assert().True(sameSnapshot(s.store.TeamMembers(), s.store.TeamMembers()), "team")
		s.Assert().True(sameSnapshot(s.store.Technicians(), s.store.Technicians()), "technicians")
		s.Assert().True(sameSnapshot(s.store.Invoices(), s.store.Invoices()), "invoices")
		s.Assert().True(sameSnapshot(s.store.Notifications(), s.store.Notifications()), "notifications")
		s.Assert().True(sameSnapshot(s.store.CustomerStats(), s.store.CustomerStats()), "customer stats")
		s.Assert().True(sameSnapshot(s.store.RecentJobs(5), s.store.RecentJobs(5)), "recent jobs")
		s.Assert().Same(s.store.DashboardStats(), s.store.DashboardStats(), "dashboard stats")
	}
}

func (s *storeTestSuite) TestChangePropagation() {
	jobsBefore := s.store.Jobs()
	statsBefore := s.store.DashboardStats()
	delivered := s.recorder(bus.Jobs, bus.All, bus.Customers)

	s.T().Log("adding job changes jobs snapshot and notifies jobs and all subscribers once")
	{
		s.addJob("AC Repair", 150, model.JobScheduled)

		s.Assert().False(sameSnapshot(jobsBefore, s.store.Jobs()), "jobs snapshot must be rebuilt")
		s.Assert().Len(s.store.Jobs(), 1)
		s.Assert().NotSame(statsBefore, s.store.DashboardStats(), "dependent view must be recomputed")
		s.Assert().Equal([]bus.DataKey{bus.Jobs, bus.All}, *delivered, "only jobs and all must be notified")
	}

	s.T().Log("updating job notifies again")
	{
		j := s.store.Jobs()[0]
		jobs := s.store.Jobs()
		_, err := s.store.UpdateJob(j.ID, model.PatchJob{Amount: ptr(model.Dollars(175))})
		s.Require().NoError(err)

		s.Assert().False(sameSnapshot(jobs, s.store.Jobs()), "jobs snapshot must be rebuilt after update")
		s.Assert().Equal(model.Dollars(175), s.store.Jobs()[0].Amount)
		s.Assert().Equal([]bus.DataKey{bus.Jobs, bus.All, bus.Jobs, bus.All}, *delivered)
	}
}

func (s *storeTestSuite) TestIsolation() {
	customers := s.store.Customers()
	team := s.store.TeamMembers()
	technicians := s.store.Technicians()
	delivered := s.recorder(bus.Customers, bus.Team, bus.Notifications)

	_, err := s.store.AddNotification(model.NewNotification{Title: "Hi", Message: "Hello", Type: model.NotificationSystem})
	s.Require().NoError(err)

	s.T().Log("unrelated snapshots keep identity and unrelated subscribers stay silent")
	{
		s.Assert().True(sameSnapshot(customers, s.store.Customers()), "customers must not be rebuilt")
		s.Assert().True(sameSnapshot(team, s.store.TeamMembers()), "team must not be rebuilt")
		s.Assert().True(sameSnapshot(technicians, s.store.Technicians()), "technicians must not be recomputed")
		s.Assert().Equal([]bus.DataKey{bus.Notifications}, *delivered)
	}
}

func (s *storeTestSuite) TestAddJobValidation() {
	jobs := s.store.Jobs()
	version := s.store.Version(bus.Jobs)

	s.T().Log("negative amount is rejected and jobs stay untouched")
	{
		_, err := s.store.AddJob(s.newJob("AC Repair", -5, model.JobScheduled))
		s.Require().Error(err)
		s.Assert().True(apperrors.IsValidation(err), "error must be validation error")

		var vErr *apperrors.ValidationErr
		s.Require().ErrorAs(err, &vErr)
		_, ok := vErr.Field("amount")
		s.Assert().True(ok, "amount must be reported")

		s.Assert().True(sameSnapshot(jobs, s.store.Jobs()), "jobs snapshot must stay the same")
		s.Assert().Equal(version, s.store.Version(bus.Jobs), "nothing must be published")
	}

	s.T().Log("out of set enum is rejected, not coerced")
	{
		nj := s.newJob("AC Repair", 10, model.JobStatus("done"))
		_, err := s.store.AddJob(nj)
		s.Require().Error(err)

		var vErr *apperrors.ValidationErr
		s.Require().ErrorAs(err, &vErr)
		_, ok := vErr.Field("status")
		s.Assert().True(ok, "status must be reported")
	}

	s.T().Log("missing required fields and malformed schedule are reported together")
	{
		_, err := s.store.AddJob(model.NewJob{CustomerID: s.ann.ID, ScheduledDate: "10/01/2025", ScheduledTime: "9am"})
		s.Require().Error(err)

		var vErr *apperrors.ValidationErr
		s.Require().ErrorAs(err, &vErr)
		for _, field := range []string{"title", "scheduledDate", "scheduledTime"} {
			_, ok := vErr.Field(field)
			s.Assert().Truef(ok, "%s must be reported", field)
		}
	}

	s.T().Log("dangling references are rejected")
	{
		nj := s.newJob("AC Repair", 10, model.JobScheduled)
		nj.CustomerID = "missing-customer"
		nj.AssigneeID = "missing-member"
		_, err := s.store.AddJob(nj)
		s.Require().Error(err)

		var vErr *apperrors.ValidationErr
		s.Require().ErrorAs(err, &vErr)
		s.Assert().Len(vErr.Violations(), 2, "both references must be reported")
	}

	s.Assert().Empty(s.store.Jobs(), "no job must be stored")
}

func (s *storeTestSuite) TestAddCustomerValidation() {
	_, err := s.store.AddCustomer(model.NewCustomer{Name: "Bob", Email: "not-an-email", Phone: "1", Address: "x"})
	s.Require().Error(err)

	var vErr *apperrors.ValidationErr
	s.Require().ErrorAs(err, &vErr)
	msg, ok := vErr.Field("email")
	s.Assert().True(ok, "email must be reported")
	s.Assert().NotEmpty(msg, "violation must carry readable message")
	s.Assert().Len(s.store.Customers(), 1)
}

func (s *storeTestSuite) TestUpdatePartialPatch() {
	j := s.addJob("AC Repair", 150, model.JobScheduled)

	s.T().Log("only patched fields change")
	{
		updated, err := s.store.UpdateJob(j.ID, model.PatchJob{Status: ptr(model.JobInProgress)})
		s.Require().NoError(err)
		s.Assert().Equal(model.JobInProgress, updated.Status)
		s.Assert().Equal(j.Title, updated.Title)
		s.Assert().Equal(j.Amount, updated.Amount)
		s.Assert().Equal(j.CreatedAt, updated.CreatedAt)
	}

	s.T().Log("invalid patched field is rejected and record stays untouched")
	{
		_, err := s.store.UpdateJob(j.ID, model.PatchJob{Amount: ptr(model.Dollars(-1))})
		s.Require().Error(err)
		s.Assert().True(apperrors.IsValidation(err))

		stored, err := s.store.Job(j.ID)
		s.Require().NoError(err)
		s.Assert().Equal(model.Dollars(150), stored.Amount)
	}

	s.T().Log("empty value for required field is rejected")
	{
		_, err := s.store.UpdateCustomer(s.ann.ID, model.PatchCustomer{Name: ptr("")})
		s.Require().Error(err)
		s.Assert().True(apperrors.IsValidation(err))
	}

	s.T().Log("patched reference is re-checked")
	{
		_, err := s.store.UpdateJob(j.ID, model.PatchJob{AssigneeID: ptr("nobody")})
		s.Require().Error(err)
		s.Assert().True(apperrors.IsValidation(err))
	}

	s.T().Log("empty assignee unassigns job")
	{
		updated, err := s.store.UpdateJob(j.ID, model.PatchJob{AssigneeID: ptr("")})
		s.Require().NoError(err)
		s.Assert().Empty(updated.AssigneeID)
	}
}

func (s *storeTestSuite) TestEmptyPatchIsNoop() {
	customers := s.store.Customers()
	version := s.store.Version(bus.Customers)

	c, err := s.store.UpdateCustomer(s.ann.ID, model.PatchCustomer{})
	s.Require().NoError(err)
	s.Assert().Equal(s.ann, c)
	s.Assert().True(sameSnapshot(customers, s.store.Customers()), "snapshot must keep identity")
	s.Assert().Equal(version, s.store.Version(bus.Customers), "nothing must be published")
}

func (s *storeTestSuite) TestNotFound() {
	s.T().Log("update of missing record reports not found")
	{
		_, err := s.store.UpdateCustomer("missing", model.PatchCustomer{Name: ptr("Bob")})
		s.Require().Error(err)
		s.Assert().True(apperrors.IsNotFound(err), "error must be not found error")
		s.Assert().False(apperrors.IsValidation(err), "not found must be distinguishable from validation")

		var nfErr *apperrors.EntryNotFoundErr
		s.Require().ErrorAs(err, &nfErr)
		s.Assert().Equal("customer", nfErr.Entity())
		s.Assert().Equal("missing", nfErr.ID())
	}

	s.T().Log("every delete and lookup of missing record reports not found")
	{
		_, err := s.store.DeleteJob("missing")
		s.Assert().True(apperrors.IsNotFound(err))
		_, err = s.store.DeleteTeamMember("missing")
		s.Assert().True(apperrors.IsNotFound(err))
		_, err = s.store.DeleteCustomer("missing")
		s.Assert().True(apperrors.IsNotFound(err))
		_, err = s.store.UpdateInvoice("missing", model.PatchInvoice{Status: ptr(model.InvoicePaid)})
		s.Assert().True(apperrors.IsNotFound(err))
		_, err = s.store.Invoice("missing")
		s.Assert().True(apperrors.IsNotFound(err))
		s.Assert().True(apperrors.IsNotFound(s.store.MarkNotificationRead("missing")))
		s.Assert().True(apperrors.IsNotFound(s.store.DeleteNotification("missing")))
	}
}

func (s *storeTestSuite) TestDeleteJobWithInvoice() {
	j := s.addJob("AC Repair", 150, model.JobCompleted)
	inv := s.addInvoice(j, model.InvoicePending)
	invoices := s.store.Invoices()
	delivered := s.recorder(bus.Jobs, bus.Invoices, bus.All)

	res, err := s.store.DeleteJob(j.ID)

	s.T().Log("delete succeeds with warning and invoice is kept untouched")
	{
		s.Require().NoError(err)
		s.Assert().NotEmpty(res.Warning, "warning must be reported")
		s.Assert().Empty(s.store.Jobs())
		s.Require().Len(s.store.Invoices(), 1)
		s.Assert().Equal(inv, s.store.Invoices()[0], "invoice must be unchanged")
		s.Assert().True(sameSnapshot(invoices, s.store.Invoices()), "invoice records didn't change")
	}

	s.T().Log("invoices subscribers learn that join degraded")
	{
		s.Assert().Equal([]bus.DataKey{bus.Jobs, bus.Invoices, bus.All}, *delivered)
	}
}

func (s *storeTestSuite) TestDeleteCustomerWithDependents() {
	j := s.addJob("AC Repair", 150, model.JobCompleted)
	s.addInvoice(j, model.InvoicePaid)
	delivered := s.recorder(bus.Customers, bus.Jobs, bus.Invoices, bus.All)

	res, err := s.store.DeleteCustomer(s.ann.ID)
	s.Require().NoError(err)
	s.Assert().Contains(res.Warning, "1 job(s)")
	s.Assert().Contains(res.Warning, "1 invoice(s)")
	s.Assert().Empty(s.store.Customers())
	s.Assert().Len(s.store.Jobs(), 1, "jobs of customer must be kept")
	s.Assert().Equal(s.ann.ID, s.store.Jobs()[0].CustomerID, "reference is left dangling")
	s.Assert().Equal([]bus.DataKey{bus.Customers, bus.Jobs, bus.Invoices, bus.All}, *delivered)
}

func (s *storeTestSuite) TestDeleteTeamMemberWithJobs() {
	s.addJob("AC Repair", 150, model.JobScheduled)
	delivered := s.recorder(bus.Team, bus.Jobs, bus.All)

	res, err := s.store.DeleteTeamMember(s.tech.ID)
	s.Require().NoError(err)
	s.Assert().Contains(res.Warning, "1 job(s)")
	s.Assert().Empty(s.store.Technicians())
	s.Assert().Equal([]bus.DataKey{bus.Team, bus.Jobs, bus.All}, *delivered)
}

func (s *storeTestSuite) TestDeleteWithoutDependents() {
	delivered := s.recorder(bus.Customers, bus.Jobs, bus.Invoices, bus.All)

	res, err := s.store.DeleteCustomer(s.ann.ID)
	s.Require().NoError(err)
	s.Assert().Empty(res.Warning, "no warning expected when nothing referenced customer")
	s.Assert().Equal([]bus.DataKey{bus.Customers, bus.All}, *delivered)
}

func (s *storeTestSuite) TestInvoices() {
	j := s.addJob("AC Repair", 150, model.JobCompleted)

	s.T().Log("invoice copies names and gets default dates")
	{
		inv := s.addInvoice(j, "")
		s.Assert().Equal(model.InvoicePending, inv.Status)
		s.Assert().Equal("Ann Lee", inv.CustomerName)
		s.Assert().Equal("AC Repair", inv.JobTitle)
		s.Assert().Equal("2025-01-10", inv.Date)
		s.Assert().Equal("2025-02-09", inv.DueDate)
	}

	s.T().Log("copied names are snapshots, not live joins")
	{
		_, err := s.store.UpdateCustomer(s.ann.ID, model.PatchCustomer{Name: ptr("Ann Lee-Smith")})
		s.Require().NoError(err)
		s.Assert().Equal("Ann Lee", s.store.Invoices()[0].CustomerName)
	}

	s.T().Log("invoice customer must match job customer")
	{
		bob, err := s.store.AddCustomer(model.NewCustomer{Name: "Bob", Email: "bob@x.com", Phone: "555", Address: "2 Elm St"})
		s.Require().NoError(err)

		_, err = s.store.AddInvoice(model.NewInvoice{JobID: j.ID, CustomerID: bob.ID, Amount: j.Amount})
		s.Require().Error(err)
		s.Assert().True(apperrors.IsValidation(err))
	}

	s.T().Log("due date before date is rejected")
	{
		_, err := s.store.AddInvoice(model.NewInvoice{
			JobID:      j.ID,
			CustomerID: s.ann.ID,
			Date:       "2025-01-10",
			DueDate:    "2025-01-01",
		})
		s.Require().Error(err)

		var vErr *apperrors.ValidationErr
		s.Require().ErrorAs(err, &vErr)
		_, ok := vErr.Field("dueDate")
		s.Assert().True(ok, "dueDate must be reported")
	}

	s.T().Log("unknown job is rejected")
	{
		_, err := s.store.AddInvoice(model.NewInvoice{JobID: "missing", CustomerID: s.ann.ID})
		s.Require().Error(err)
		s.Assert().True(apperrors.IsValidation(err))
	}

	s.Assert().Len(s.store.Invoices(), 1)
}

func (s *storeTestSuite) TestUpdateInvoice() {
	j := s.addJob("AC Repair", 150, model.JobCompleted)
	other := s.addJob("Water Heater", 900, model.JobCompleted)
	inv := s.addInvoice(j, model.InvoicePending)

	s.T().Log("status patch keeps other fields")
	{
		updated, err := s.store.UpdateInvoice(inv.ID, model.PatchInvoice{Status: ptr(model.InvoicePaid)})
		s.Require().NoError(err)
		s.Assert().Equal(model.InvoicePaid, updated.Status)
		s.Assert().Equal(inv.Amount, updated.Amount)
	}

	s.T().Log("re-pointing invoice to another job refreshes job title")
	{
		updated, err := s.store.UpdateInvoice(inv.ID, model.PatchInvoice{JobID: ptr(other.ID)})
		s.Require().NoError(err)
		s.Assert().Equal("Water Heater", updated.JobTitle)
	}

	s.T().Log("invoice with dangling job still accepts unrelated patches")
	{
		_, err := s.store.DeleteJob(other.ID)
		s.Require().NoError(err)

		updated, err := s.store.UpdateInvoice(inv.ID, model.PatchInvoice{Amount: ptr(model.Dollars(100))})
		s.Require().NoError(err)
		s.Assert().Equal(model.Dollars(100), updated.Amount)
	}
}

func (s *storeTestSuite) TestNotifications() {
	first, err := s.store.AddNotification(model.NewNotification{Title: "Job", Message: "Job done", Type: model.NotificationJob})
	s.Require().NoError(err)
	_, err = s.store.AddNotification(model.NewNotification{Title: "Pay", Message: "Paid", Type: model.NotificationPayment})
	s.Require().NoError(err)

	s.T().Log("notification is unread after creation")
	{
		s.Assert().False(first.Read)
		s.Assert().Equal(2, s.store.UnreadNotificationCount())
	}

	s.T().Log("invalid type is rejected")
	{
		_, err := s.store.AddNotification(model.NewNotification{Title: "x", Message: "y", Type: "alert"})
		s.Require().Error(err)
		s.Assert().True(apperrors.IsValidation(err))
	}

	s.T().Log("marking read changes snapshot, repeated marking is no-op")
	{
		before := s.store.Notifications()
		s.Require().NoError(s.store.MarkNotificationRead(first.ID))
		after := s.store.Notifications()
		s.Assert().False(sameSnapshot(before, after))
		s.Assert().True(after[0].Read)
		s.Assert().Equal(1, s.store.UnreadNotificationCount())

		s.Require().NoError(s.store.MarkNotificationRead(first.ID))
		s.Assert().True(sameSnapshot(after, s.store.Notifications()), "no-op must keep identity")
	}

	s.T().Log("mark all publishes once and only when something changed")
	{
		delivered := s.recorder(bus.Notifications)
		s.store.MarkAllNotificationsRead()
		s.store.MarkAllNotificationsRead()
		s.Assert().Equal([]bus.DataKey{bus.Notifications}, *delivered)
		s.Assert().Equal(0, s.store.UnreadNotificationCount())
	}

	s.T().Log("delete removes notification")
	{
		s.Require().NoError(s.store.DeleteNotification(first.ID))
		s.Assert().Len(s.store.Notifications(), 1)
	}
}

func (s *storeTestSuite) TestReentrantMutationPanics() {
	unsubscribe := s.store.Subscribe(bus.Customers, func() {
		_, _ = s.store.AddNotification(model.NewNotification{Title: "x", Message: "y", Type: model.NotificationSystem})
	})

	s.T().Log("mutation from subscriber fails fast")
	{
		s.Assert().PanicsWithValue(apperrors.ErrReentrantMutation, func() {
			_, _ = s.store.UpdateCustomer(s.ann.ID, model.PatchCustomer{Phone: ptr("555-0199")})
		})
		s.Assert().Empty(s.store.Notifications(), "nested mutation must not be applied")
	}

	s.T().Log("store stays usable after contract violation")
	{
		unsubscribe()
		_, err := s.store.UpdateCustomer(s.ann.ID, model.PatchCustomer{Phone: ptr("555-0100")})
		s.Assert().NoError(err)
	}
}

func (s *storeTestSuite) TestReadsDuringDelivery() {
	var seen []model.Customer
	s.store.Subscribe(bus.Customers, func() {
		seen = s.store.Customers()
	})

	_, err := s.store.UpdateCustomer(s.ann.ID, model.PatchCustomer{Status: ptr(model.CustomerInactive)})
	s.Require().NoError(err)
	s.Require().Len(seen, 1)
	s.Assert().Equal(model.CustomerInactive, seen[0].Status, "subscriber must read fresh snapshot")
	s.Assert().True(sameSnapshot(seen, s.store.Customers()), "subscriber and later readers must agree")
}

func (s *storeTestSuite) TestSubscribe() {
	s.T().Log("unknown key is a contract violation")
	{
		s.Assert().PanicsWithValue(apperrors.ErrUnknownDataKey, func() {
			s.store.Subscribe(bus.DataKey("payments"), func() {})
		})
	}

	s.T().Log("unsubscribe is idempotent")
	{
		calls := 0
		unsubscribe := s.store.Subscribe(bus.Customers, func() { calls++ })
		_, err := s.store.UpdateCustomer(s.ann.ID, model.PatchCustomer{Phone: ptr("1")})
		s.Require().NoError(err)

		unsubscribe()
		s.Assert().NotPanics(unsubscribe)

		_, err = s.store.UpdateCustomer(s.ann.ID, model.PatchCustomer{Phone: ptr("2")})
		s.Require().NoError(err)
		s.Assert().Equal(1, calls, "callback must not be invoked after unsubscribe")
	}
}

func (s *storeTestSuite) TestVersions() {
	customers := s.store.Version(bus.Customers)
	all := s.store.Version(bus.All)
	jobs := s.store.Version(bus.Jobs)

	_, err := s.store.UpdateCustomer(s.ann.ID, model.PatchCustomer{Phone: ptr("1")})
	s.Require().NoError(err)

	s.Assert().Equal(customers+1, s.store.Version(bus.Customers))
	s.Assert().Equal(all+1, s.store.Version(bus.All))
	s.Assert().Equal(jobs, s.store.Version(bus.Jobs))
}

func (s *storeTestSuite) TestReset() {
	s.addJob("AC Repair", 150, model.JobCompleted)
	stats := s.store.DashboardStats()
	delivered := s.recorder(bus.All)

	s.store.Reset()

	s.Assert().Empty(s.store.Customers())
	s.Assert().Empty(s.store.Jobs())
	s.Assert().Empty(s.store.TeamMembers())
	s.Assert().NotSame(stats, s.store.DashboardStats())
	s.Assert().Equal(0, s.store.DashboardStats().TotalJobs)
	s.Assert().Equal([]bus.DataKey{bus.All}, *delivered, "subscriptions must survive reset")
}

func (s *storeTestSuite) TestEndToEnd() {
	job, err := s.store.AddJob(model.NewJob{
		Title:         "AC Repair",
		CustomerID:    s.ann.ID,
		AssigneeID:    s.tech.ID,
		Amount:        model.Dollars(150),
		Status:        model.JobScheduled,
		Priority:      model.PriorityMedium,
		ScheduledDate: "2025-01-10",
		ScheduledTime: "09:00",
	})
	s.Require().NoError(err)

	s.T().Log("customer stats count new job")
	{
		stats := s.store.CustomerStats()
		s.Require().Len(stats, 1)
		s.Assert().Equal(s.ann.ID, stats[0].CustomerID)
		s.Assert().Equal(1, stats[0].TotalJobs)
	}

	s.T().Log("completed job is invoiced and shows up as pending revenue")
	{
		_, err := s.store.UpdateJob(job.ID, model.PatchJob{Status: ptr(model.JobCompleted)})
		s.Require().NoError(err)

		_, err = s.store.AddInvoice(model.NewInvoice{
			JobID:      job.ID,
			CustomerID: s.ann.ID,
			Amount:     model.Dollars(150),
			Status:     model.InvoicePending,
			Date:       "2025-01-10",
			DueDate:    "2025-02-09",
		})
		s.Require().NoError(err)

		s.Assert().Equal(model.Dollars(150), s.store.DashboardStats().PendingRevenue)
	}
}

// start store test suite
func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(storeTestSuite))
}
