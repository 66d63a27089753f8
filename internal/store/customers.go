package store

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/fieldops/internal/bus"
	"github.com/umalmyha/fieldops/internal/model"
)

// Customers returns all customers in creation order
func (s *Store) Customers() []model.Customer {
	return s.customers.all()
}

// Customer returns customer with id
func (s *Store) Customer(id string) (model.Customer, error) {
	c, ok := s.customers.get(id)
	if !ok {
		return model.Customer{}, notFound(entityCustomer, id)
	}
	return c, nil
}

// AddCustomer validates and stores new customer
func (s *Store) AddCustomer(nc model.NewCustomer) (model.Customer, error) {
	s.mustNotDeliver()

	if nc.Status == "" {
		nc.Status = model.CustomerActive
	}

	if err := s.validate(nc); err != nil {
		return model.Customer{}, err
	}

	c := model.Customer{
		ID:        s.newID(),
		Name:      nc.Name,
		Email:     nc.Email,
		Phone:     nc.Phone,
		Address:   nc.Address,
		Status:    nc.Status,
		CreatedAt: s.now(),
	}
	s.customers.insert(c.ID, c)

	s.commit(bus.Customers)
	return c, nil
}

// UpdateCustomer applies patch to customer with id
func (s *Store) UpdateCustomer(id string, patch model.PatchCustomer) (model.Customer, error) {
	s.mustNotDeliver()

	c, ok := s.customers.get(id)
	if !ok {
		return model.Customer{}, notFound(entityCustomer, id)
	}

	if patch.IsEmpty() {
		return c, nil
	}

	if err := s.validate(patch); err != nil {
		return model.Customer{}, err
	}

	c = c.MergePatch(patch)
	s.customers.replace(id, c)

	s.commit(bus.Customers)
	return c, nil
}

// DeleteCustomer removes customer with id. Jobs and invoices referencing customer
// are kept and reported in result warning.
func (s *Store) DeleteCustomer(id string) (model.DeleteResult, error) {
	s.mustNotDeliver()

	if !s.customers.has(id) {
		return model.DeleteResult{}, notFound(entityCustomer, id)
	}

	jobs := 0
	s.jobs.each(func(j model.Job) bool {
		if j.CustomerID == id {
			jobs++
		}
		return true
	})

	invoices := 0
	s.invoices.each(func(i model.Invoice) bool {
		if i.CustomerID == id {
			invoices++
		}
		return true
	})

	s.customers.remove(id)

	keys := []bus.DataKey{bus.Customers}
	var refs []string
	if jobs > 0 {
		keys = append(keys, bus.Jobs)
		refs = append(refs, fmt.Sprintf("%d job(s)", jobs))
	}
	if invoices > 0 {
		keys = append(keys, bus.Invoices)
		refs = append(refs, fmt.Sprintf("%d invoice(s)", invoices))
	}

	res := model.DeleteResult{}
	if len(refs) > 0 {
		res.Warning = fmt.Sprintf("customer was deleted but is still referenced by %s", strings.Join(refs, " and "))
		s.log.WithFields(logrus.Fields{"customer": id, "jobs": jobs, "invoices": invoices}).Warn(res.Warning)
	}

	s.commit(keys...)
	return res, nil
}
