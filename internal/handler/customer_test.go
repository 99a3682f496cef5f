package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/NicolasR2/PaginaPelis/internal/model"
)

type customerMock struct {
	existsFn func(ctx context.Context, customerID int64) (bool, error)
}

func (m *customerMock) Exists(ctx context.Context, customerID int64) (bool, error) {
	return m.existsFn(ctx, customerID)
}

type openRentalsMock struct {
	listFn func(ctx context.Context, customerID int64) ([]model.OpenRental, error)
}

func (m *openRentalsMock) ListOpenByCustomer(ctx context.Context, customerID int64) ([]model.OpenRental, error) {
	return m.listFn(ctx, customerID)
}

func TestVerifyCustomer(t *testing.T) {
	for _, tc := range []struct {
		name   string
		exists bool
	}{
		{"known customer", true},
		{"unknown customer", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := NewCustomerHandler(&customerMock{
				existsFn: func(_ context.Context, id int64) (bool, error) {
					if id != 3 {
						t.Fatalf("id=%d; want 3", id)
					}
					return tc.exists, nil
				},
			}, nil)

			c, rec := getRequest("/customers/3")
			c.SetParamNames("id")
			c.SetParamValues("3")
			if err := h.Verify(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("status=%d; want 200", rec.Code)
			}
			var body struct {
				Exists bool `json:"exists"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("bad body: %v", err)
			}
			if body.Exists != tc.exists {
				t.Fatalf("exists=%v; want %v", body.Exists, tc.exists)
			}
		})
	}
}

func TestVerifyCustomer_InvalidID(t *testing.T) {
	h := NewCustomerHandler(&customerMock{
		existsFn: func(context.Context, int64) (bool, error) {
			t.Fatal("repository must not be queried for a malformed id")
			return false, nil
		},
	}, nil)

	c, rec := getRequest("/customers/abc")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d; want 400", rec.Code)
	}
}

func TestGetCustomerRentals(t *testing.T) {
	rentals := &openRentalsMock{
		listFn: func(_ context.Context, customerID int64) ([]model.OpenRental, error) {
			if customerID != 3 {
				t.Fatalf("customer=%d; want 3", customerID)
			}
			return []model.OpenRental{{
				RentalID:    7,
				FilmID:      10,
				Title:       "ACADEMY DINOSAUR",
				RentalDate:  "2026-08-30 12:00:00",
				InventoryID: 100,
			}}, nil
		},
	}
	h := NewCustomerHandler(nil, rentals)

	c, rec := getRequest("/customers/3/rentals")
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.GetRentals(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d; want 200", rec.Code)
	}
	var body struct {
		Rentals []model.OpenRental `json:"rentals"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(body.Rentals) != 1 || body.Rentals[0].RentalID != 7 || body.Rentals[0].RentalDate != "2026-08-30 12:00:00" {
		t.Fatalf("body = %+v", body)
	}
}

func TestGetCustomerRentals_EmptyIsArray(t *testing.T) {
	h := NewCustomerHandler(nil, &openRentalsMock{
		listFn: func(context.Context, int64) ([]model.OpenRental, error) {
			return []model.OpenRental{}, nil
		},
	})

	c, rec := getRequest("/customers/3/rentals")
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.GetRentals(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"rentals":[]`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
