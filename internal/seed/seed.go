// Package seed populates store with fixture data described in YAML.
package seed

import (
	"fmt"
	"io"
	"os"

	"github.com/umalmyha/fieldops/internal/model"
	"github.com/umalmyha/fieldops/internal/store"
	"gopkg.in/yaml.v3"
)

type teamMember struct {
	Ref           string  `yaml:"ref"`
	Name          string  `yaml:"name"`
	Email         string  `yaml:"email"`
	Phone         string  `yaml:"phone"`
	Role          string  `yaml:"role"`
	Status        string  `yaml:"status"`
	Availability  string  `yaml:"availability"`
	JobsCompleted int     `yaml:"jobs_completed"`
	Rating        float64 `yaml:"rating"`
}

type customer struct {
	Ref     string `yaml:"ref"`
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
	Status  string `yaml:"status"`
}

type job struct {
	Ref           string  `yaml:"ref"`
	Title         string  `yaml:"title"`
	Customer      string  `yaml:"customer"`
	Assignee      string  `yaml:"assignee"`
	Address       string  `yaml:"address"`
	Status        string  `yaml:"status"`
	Priority      string  `yaml:"priority"`
	ScheduledDate string  `yaml:"scheduled_date"`
	ScheduledTime string  `yaml:"scheduled_time"`
	Amount        float64 `yaml:"amount"`
	Description   string  `yaml:"description"`
}

type invoice struct {
	Ref     string   `yaml:"ref"`
	Job     string   `yaml:"job"`
	Amount  *float64 `yaml:"amount"`
	Status  string   `yaml:"status"`
	Date    string   `yaml:"date"`
	DueDate string   `yaml:"due_date"`
}

type notification struct {
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
	Type    string `yaml:"type"`
	Read    bool   `yaml:"read"`
}

// Fixture is decoded seed document
type Fixture struct {
	Team          []teamMember   `yaml:"team"`
	Customers     []customer     `yaml:"customers"`
	Jobs          []job          `yaml:"jobs"`
	Invoices      []invoice      `yaml:"invoices"`
	Notifications []notification `yaml:"notifications"`
}

// Summary is number of records created per collection
type Summary struct {
	Team          int
	Customers     int
	Jobs          int
	Invoices      int
	Notifications int
}

// Decode reads fixture, unknown fields are rejected
func Decode(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return f, nil
		}
		return f, fmt.Errorf("failed to decode seed fixture - %w", err)
	}
	return f, nil
}

// LoadFile decodes fixture from file and applies it to s
func LoadFile(s *store.Store, path string) (Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to open seed file - %w", err)
	}
	defer file.Close()

	f, err := Decode(file)
	if err != nil {
		return Summary{}, err
	}
	return Apply(s, f)
}

// Apply creates fixture records through store mutations in dependency order.
// References between records are resolved by ref labels. First failure stops loading.
func Apply(s *store.Store, f Fixture) (Summary, error) {
	var sum Summary
	members := make(map[string]string)
	customers := make(map[string]string)
	jobs := make(map[string]model.Job)
	invoices := make(map[string]string)

	for i, tm := range f.Team {
		if err := checkRef(members, tm.Ref); err != nil {
			return sum, entryErr("team", i, tm.Ref, err)
		}

		m, err := s.AddTeamMember(model.NewTeamMember{
			Name:          tm.Name,
			Email:         tm.Email,
			Phone:         tm.Phone,
			Role:          model.Role(tm.Role),
			Status:        model.MemberStatus(tm.Status),
			Availability:  model.Availability(tm.Availability),
			JobsCompleted: tm.JobsCompleted,
			Rating:        tm.Rating,
		})
		if err != nil {
			return sum, entryErr("team", i, tm.Ref, err)
		}
		remember(members, tm.Ref, m.ID)
		sum.Team++
	}

	for i, c := range f.Customers {
		if err := checkRef(customers, c.Ref); err != nil {
			return sum, entryErr("customers", i, c.Ref, err)
		}

		cust, err := s.AddCustomer(model.NewCustomer{
			Name:    c.Name,
			Email:   c.Email,
			Phone:   c.Phone,
			Address: c.Address,
			Status:  model.CustomerStatus(c.Status),
		})
		if err != nil {
			return sum, entryErr("customers", i, c.Ref, err)
		}
		remember(customers, c.Ref, cust.ID)
		sum.Customers++
	}

	for i, j := range f.Jobs {
		if _, dup := jobs[j.Ref]; j.Ref != "" && dup {
			return sum, entryErr("jobs", i, j.Ref, fmt.Errorf("duplicate ref %q", j.Ref))
		}

		customerID, ok := customers[j.Customer]
		if !ok {
			return sum, entryErr("jobs", i, j.Ref, fmt.Errorf("unknown customer ref %q", j.Customer))
		}

		assigneeID := ""
		if j.Assignee != "" {
			if assigneeID, ok = members[j.Assignee]; !ok {
				return sum, entryErr("jobs", i, j.Ref, fmt.Errorf("unknown assignee ref %q", j.Assignee))
			}
		}

		created, err := s.AddJob(model.NewJob{
			Title:         j.Title,
			CustomerID:    customerID,
			Address:       j.Address,
			Status:        model.JobStatus(j.Status),
			Priority:      model.Priority(j.Priority),
			AssigneeID:    assigneeID,
			ScheduledDate: j.ScheduledDate,
			ScheduledTime: j.ScheduledTime,
			Amount:        model.MoneyFromFloat(j.Amount),
			Description:   j.Description,
		})
		if err != nil {
			return sum, entryErr("jobs", i, j.Ref, err)
		}
		if j.Ref != "" {
			jobs[j.Ref] = created
		}
		sum.Jobs++
	}

	for i, inv := range f.Invoices {
		if err := checkRef(invoices, inv.Ref); err != nil {
			return sum, entryErr("invoices", i, inv.Ref, err)
		}

		billed, ok := jobs[inv.Job]
		if !ok {
			return sum, entryErr("invoices", i, inv.Ref, fmt.Errorf("unknown job ref %q", inv.Job))
		}

		amount := billed.Amount
		if inv.Amount != nil {
			amount = model.MoneyFromFloat(*inv.Amount)
		}

		created, err := s.AddInvoice(model.NewInvoice{
			JobID:      billed.ID,
			CustomerID: billed.CustomerID,
			Amount:     amount,
			Status:     model.InvoiceStatus(inv.Status),
			Date:       inv.Date,
			DueDate:    inv.DueDate,
		})
		if err != nil {
			return sum, entryErr("invoices", i, inv.Ref, err)
		}
		remember(invoices, inv.Ref, created.ID)
		sum.Invoices++
	}

	for i, n := range f.Notifications {
		created, err := s.AddNotification(model.NewNotification{
			Title:   n.Title,
			Message: n.Message,
			Type:    model.NotificationType(n.Type),
		})
		if err != nil {
			return sum, entryErr("notifications", i, "", err)
		}
		if n.Read {
			if err := s.MarkNotificationRead(created.ID); err != nil {
				return sum, entryErr("notifications", i, "", err)
			}
		}
		sum.Notifications++
	}

	return sum, nil
}

// checkRef rejects label already used in the same section
func checkRef(refs map[string]string, ref string) error {
	if ref == "" {
		return nil
	}
	if _, ok := refs[ref]; ok {
		return fmt.Errorf("duplicate ref %q", ref)
	}
	return nil
}

func remember(refs map[string]string, ref string, id string) {
	if ref != "" {
		refs[ref] = id
	}
}

func entryErr(section string, idx int, ref string, err error) error {
	if ref == "" {
		return fmt.Errorf("seed %s[%d] - %w", section, idx, err)
	}
	return fmt.Errorf("seed %s[%d] (%s) - %w", section, idx, ref, err)
}
