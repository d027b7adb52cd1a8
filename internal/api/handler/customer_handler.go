package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/minicrm/crm-api/internal/api/metrics"
	"github.com/minicrm/crm-api/internal/core/ports"
)

type CustomerHandler struct {
	customerService ports.CustomerService
}

func NewCustomerHandler(customerService ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create creates a customer owned by the authenticated caller.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCustomerRequest  true  "Customer details"
// @Success      201   {object}  customerResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.customerService.Create(c.Request().Context(), user, ports.CreateCustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
	})
	if err != nil {
		return err
	}

	metrics.CustomersCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, toCustomerResponse(customer))
}

// List returns the customers visible to the caller, newest first.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Partial match on name, email or company"
// @Param        skip    query     int     false  "Records to skip"  default(0)
// @Param        limit   query     int     false  "Page size (max 100)"  default(10)
// @Success      200     {array}   customerResponse
// @Failure      401     {object}  map[string]string
// @Router       /customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	customers, err := h.customerService.List(c.Request().Context(), user, ports.ListCustomersInput{
		Search: c.QueryParam("search"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCustomerResponses(customers))
}

// Get returns a single customer visible to the caller.
//
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  customerResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	customer, err := h.customerService.Get(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// Update partially updates a customer visible to the caller.
//
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Customer ID"
// @Param        body  body      updateCustomerRequest  true  "Fields to change"
// @Success      200   {object}  customerResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.customerService.Update(c.Request().Context(), user, c.Param("id"), ports.CustomerUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// Delete removes a customer and all of its leads.
//
// @Summary      Delete a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  deleteResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.customerService.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteResponse{Message: "customer deleted"})
}
