package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minicrm/crm-api/internal/api/metrics"
	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

type LeadHandler struct {
	leadService ports.LeadService
}

func NewLeadHandler(leadService ports.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// statusQuery parses the optional ?status= filter. An absent parameter
// means "any status"; an unknown value is rejected.
func statusQuery(c echo.Context) (domain.LeadStatus, error) {
	raw := c.QueryParam("status")
	if raw == "" {
		return "", nil
	}
	status := domain.LeadStatus(raw)
	if !status.Valid() {
		return "", domain.ErrInvalidLeadStatus
	}
	return status, nil
}

// CreateForCustomer creates a lead under one of the caller's customers.
//
// @Summary      Create a lead for a customer
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Customer ID"
// @Param        body  body      createLeadRequest  true  "Lead details"
// @Success      201   {object}  leadResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /customers/{id}/leads [post]
func (h *LeadHandler) CreateForCustomer(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lead, err := h.leadService.Create(c.Request().Context(), user, c.Param("id"), ports.CreateLeadInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.LeadStatus(req.Status),
		Value:       req.Value,
	})
	if err != nil {
		return err
	}

	metrics.LeadsCreatedTotal.WithLabelValues(string(lead.Status)).Inc()

	return c.JSON(http.StatusCreated, toLeadResponse(lead))
}

// ListForCustomer returns the leads of one of the caller's customers.
//
// @Summary      List leads of a customer
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "Customer ID"
// @Param        status  query     string  false  "Filter by status"  Enums(New, Contacted, Converted, Lost)
// @Success      200     {array}   leadResponse
// @Failure      401     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /customers/{id}/leads [get]
func (h *LeadHandler) ListForCustomer(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	status, err := statusQuery(c)
	if err != nil {
		return err
	}

	leads, err := h.leadService.ListByCustomer(c.Request().Context(), user, c.Param("id"), status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLeadResponses(leads))
}

// List returns every lead visible to the caller across all customers.
//
// @Summary      List all visible leads
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"  Enums(New, Contacted, Converted, Lost)
// @Success      200     {array}   leadResponse
// @Failure      401     {object}  map[string]string
// @Router       /leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	status, err := statusQuery(c)
	if err != nil {
		return err
	}

	leads, err := h.leadService.List(c.Request().Context(), user, status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLeadResponses(leads))
}

// Update partially updates a lead whose parent the caller can access.
//
// @Summary      Update a lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Lead ID"
// @Param        body  body      updateLeadRequest  true  "Fields to change"
// @Success      200   {object}  leadResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /leads/{id} [put]
func (h *LeadHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	update := ports.LeadUpdate{
		Title:       req.Title,
		Description: req.Description,
		Value:       req.Value,
	}
	if req.Status != nil {
		status := domain.LeadStatus(*req.Status)
		update.Status = &status
	}

	lead, err := h.leadService.Update(c.Request().Context(), user, c.Param("id"), update)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLeadResponse(lead))
}

// Delete removes a lead whose parent the caller can access.
//
// @Summary      Delete a lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead ID"
// @Success      200  {object}  deleteResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /leads/{id} [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.leadService.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteResponse{Message: "lead deleted"})
}
