package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/fieldops/internal/bus"
	"github.com/umalmyha/fieldops/internal/model"
	"github.com/umalmyha/fieldops/internal/store"
)

// InvoiceHTTPHandler is http handler for invoice endpoint.
// Invoices are historical records and can't be deleted.
type InvoiceHTTPHandler struct {
	store *SyncStore
}

// NewInvoiceHTTPHandler builds new InvoiceHTTPHandler
func NewInvoiceHTTPHandler(s *SyncStore) *InvoiceHTTPHandler {
	return &InvoiceHTTPHandler{store: s}
}

// GetAll gets all invoices
// @Summary     Get all invoices
// @Tags        invoices
// @Produce     json
// @Success     200    {array}  model.Invoice
// @Router      /api/invoices [get]
func (h *InvoiceHTTPHandler) GetAll(c echo.Context) error {
	var invoices []model.Invoice
	var tag string
	_ = h.store.Do(func(s *store.Store) error {
		invoices = s.Invoices()
		tag = etag(s, "invoices", bus.Invoices)
		return nil
	})
	return snapshot(c, tag, invoices)
}

// Get gets invoice
// @Summary     Get single invoice by id
// @Tags        invoices
// @Produce     json
// @Param       id     path     string true "Invoice guid" Format(uuid)
// @Success     200    {object} model.Invoice
// @Failure     404    {object} errors.EntryNotFoundErr
// @Router      /api/invoices/{id} [get]
func (h *InvoiceHTTPHandler) Get(c echo.Context) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}

	var invoice model.Invoice
	err = h.store.Do(func(s *store.Store) (err error) {
		invoice, err = s.Invoice(id)
		return err
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, invoice)
}

// Post bills job
// @Summary     New invoice
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Param       newInvoice body     model.NewInvoice true "Data for new invoice"
// @Success     201        {object} model.Invoice
// @Failure     400        {object} errors.ValidationErr
// @Router      /api/invoices [post]
func (h *InvoiceHTTPHandler) Post(c echo.Context) error {
	var ni model.NewInvoice
	if err := bindBody(c, &ni); err != nil {
		return err
	}

	var invoice model.Invoice
	err := h.store.Do(func(s *store.Store) (err error) {
		invoice, err = s.AddInvoice(ni)
		return err
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, invoice)
}

// Patch updates invoice fields present in payload
// @Summary     Patch invoice
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Param       id           path     string             true "Invoice guid" Format(uuid)
// @Param       patchInvoice body     model.PatchInvoice true "Fields to update"
// @Success     200          {object} model.Invoice
// @Failure     400          {object} errors.ValidationErr
// @Failure     404          {object} errors.EntryNotFoundErr
// @Router      /api/invoices/{id} [patch]
func (h *InvoiceHTTPHandler) Patch(c echo.Context) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}

	var patch model.PatchInvoice
	if err := bindBody(c, &patch); err != nil {
		return err
	}

	var invoice model.Invoice
	err = h.store.Do(func(s *store.Store) (err error) {
		invoice, err = s.UpdateInvoice(id, patch)
		return err
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, invoice)
}
