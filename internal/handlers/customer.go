package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/fieldops/internal/bus"
	"github.com/umalmyha/fieldops/internal/model"
	"github.com/umalmyha/fieldops/internal/store"
)

// CustomerHTTPHandler is http handler for customer endpoint
type CustomerHTTPHandler struct {
	store *SyncStore
}

// NewCustomerHTTPHandler builds new CustomerHTTPHandler
func NewCustomerHTTPHandler(s *SyncStore) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{store: s}
}

// GetAll gets all customers
// @Summary     Get all customers
// @Tags        customers
// @Produce     json
// @Success     200    {array}  model.Customer
// @Success     304    "Not modified since provided ETag"
// @Router      /api/customers [get]
func (h *CustomerHTTPHandler) GetAll(c echo.Context) error {
	var customers []model.Customer
	var tag string
	_ = h.store.Do(func(s *store.Store) error {
		customers = s.Customers()
		tag = etag(s, "customers", bus.Customers)
		return nil
	})
	return snapshot(c, tag, customers)
}

// Get gets customer
// @Summary     Get single customer by id
// @Tags        customers
// @Produce     json
// @Param       id     path     string true "Customer guid" Format(uuid)
// @Success     200    {object} model.Customer
// @Failure     400    {object} errors.ValidationErr
// @Failure     404    {object} errors.EntryNotFoundErr
// @Router      /api/customers/{id} [get]
func (h *CustomerHTTPHandler) Get(c echo.Context) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}

	var customer model.Customer
	err = h.store.Do(func(s *store.Store) (err error) {
		customer, err = s.Customer(id)
		return err
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, customer)
}

// Post creates new customer
// @Summary     New customer
// @Tags        customers
// @Accept      json
// @Produce     json
// @Param       newCustomer body     model.NewCustomer true "Data for new customer"
// @Success     201         {object} model.Customer
// @Failure     400         {object} errors.ValidationErr
// @Router      /api/customers [post]
func (h *CustomerHTTPHandler) Post(c echo.Context) error {
	var nc model.NewCustomer
	if err := bindBody(c, &nc); err != nil {
		return err
	}

	var customer model.Customer
	err := h.store.Do(func(s *store.Store) (err error) {
		customer, err = s.AddCustomer(nc)
		return err
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, customer)
}

// Patch updates customer fields present in payload
// @Summary     Patch customer
// @Tags        customers
// @Accept      json
// @Produce     json
// @Param       id            path     string              true "Customer guid" Format(uuid)
// @Param       patchCustomer body     model.PatchCustomer true "Fields to update"
// @Success     200           {object} model.Customer
// @Failure     400           {object} errors.ValidationErr
// @Failure     404           {object} errors.EntryNotFoundErr
// @Router      /api/customers/{id} [patch]
func (h *CustomerHTTPHandler) Patch(c echo.Context) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}

	var patch model.PatchCustomer
	if err := bindBody(c, &patch); err != nil {
		return err
	}

	var customer model.Customer
	err = h.store.Do(func(s *store.Store) (err error) {
		customer, err = s.UpdateCustomer(id, patch)
		return err
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, customer)
}

// DeleteByID deletes customer
// @Summary     Delete customer by id
// @Description Jobs and invoices of customer are kept, response carries warning about them
// @Tags        customers
// @Param       id     path     string true "Customer guid" Format(uuid)
// @Success     200    {object} deleted
// @Success     204    "Deleted, nothing referenced customer"
// @Failure     404    {object} errors.EntryNotFoundErr
// @Router      /api/customers/{id} [delete]
func (h *CustomerHTTPHandler) DeleteByID(c echo.Context) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}

	var res model.DeleteResult
	err = h.store.Do(func(s *store.Store) (err error) {
		res, err = s.DeleteCustomer(id)
		return err
	})
	if err != nil {
		return err
	}
	return deleteResponse(c, res)
}
