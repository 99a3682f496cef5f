package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/NicolasR2/PaginaPelis/internal/model"
)

// CustomerDirectory is the read side of customer data: existence plus the
// customer's open rentals.
type CustomerDirectory interface {
	Exists(ctx context.Context, customerID int64) (bool, error)
}

// OpenRentalLister lists a customer's rentals that have not been returned.
type OpenRentalLister interface {
	ListOpenByCustomer(ctx context.Context, customerID int64) ([]model.OpenRental, error)
}

// CustomerHandler serves the customer read endpoints.
type CustomerHandler struct {
	Customers CustomerDirectory
	Rentals   OpenRentalLister
}

func NewCustomerHandler(customers CustomerDirectory, rentals OpenRentalLister) *CustomerHandler {
	return &CustomerHandler{Customers: customers, Rentals: rentals}
}

// GetRentals handles GET /customers/:id/rentals, returning the customer's
// currently open rentals with film identity and rental timestamp.
func (h *CustomerHandler) GetRentals(c echo.Context) error {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || customerID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}
	rentals, err := h.Rentals.ListOpenByCustomer(c.Request().Context(), customerID)
	if err != nil {
		log.Printf("customers: rental listing failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rentals": rentals})
}

// Verify handles GET /customers/:id with a bare existence check.
func (h *CustomerHandler) Verify(c echo.Context) error {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || customerID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}
	exists, err := h.Customers.Exists(c.Request().Context(), customerID)
	if err != nil {
		log.Printf("customers: existence check failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"exists": exists})
}
