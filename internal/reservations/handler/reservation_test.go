package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "campsite/pkg/errors"
	"campsite/pkg/logger"
	"campsite/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Mock service for testing
type mockReservationService struct {
	getAvailabilityFunc func(ctx context.Context, checkin, checkout string) ([]string, error)
	createFunc          func(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error)
	getByIDFunc         func(ctx context.Context, id string) (*model.Reservation, error)
	updateFunc          func(ctx context.Context, id string, req *model.ReservationRequest) (*model.Reservation, error)
	cancelFunc          func(ctx context.Context, id string) error
}

func (m *mockReservationService) GetAvailability(ctx context.Context, checkin, checkout string) ([]string, error) {
	if m.getAvailabilityFunc != nil {
		return m.getAvailabilityFunc(ctx, checkin, checkout)
	}
	return []string{}, nil
}

func (m *mockReservationService) Create(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockReservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockReservationService) Update(ctx context.Context, id string, req *model.ReservationRequest) (*model.Reservation, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *mockReservationService) Cancel(ctx context.Context, id string) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Service: "test",
	})
}

func sampleReservation() *model.Reservation {
	checkin := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	return &model.Reservation{
		ID:        "res-1",
		FirstName: "John",
		LastName:  "Smith",
		Email:     "john.smith@example.com",
		Range: model.DateRange{
			Checkin:  checkin,
			Checkout: checkin.AddDate(0, 0, 2),
		},
	}
}

func TestGetAvailability(t *testing.T) {
	var gotCheckin, gotCheckout string
	h := NewReservationHandler(&mockReservationService{
		getAvailabilityFunc: func(ctx context.Context, checkin, checkout string) ([]string, error) {
			gotCheckin, gotCheckout = checkin, checkout
			return []string{"2026-09-10", "2026-09-11"}, nil
		},
	}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?checkin=2026-09-10&checkout=2026-09-11", nil)
	w := httptest.NewRecorder()

	h.GetAvailability(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if gotCheckin != "2026-09-10" || gotCheckout != "2026-09-11" {
		t.Errorf("query params not passed through: %s / %s", gotCheckin, gotCheckout)
	}

	var body struct {
		Data availabilityResponse `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Data.AvailableDays) != 2 {
		t.Errorf("expected 2 available days, got %v", body.Data.AvailableDays)
	}
}

func TestCreate(t *testing.T) {
	h := NewReservationHandler(&mockReservationService{
		createFunc: func(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
			return sampleReservation(), nil
		},
	}, testLogger())

	payload := `{"first_name":"John","last_name":"Smith","email":"john.smith@example.com","checkin":"2026-09-10","checkout":"2026-09-12"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(payload))
	w := httptest.NewRecorder()

	h.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var body struct {
		Data reservationResponse `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Data.ID != "res-1" {
		t.Errorf("expected id res-1, got %s", body.Data.ID)
	}
	if body.Data.Checkin != "2026-09-10" || body.Data.Checkout != "2026-09-12" {
		t.Errorf("dates not formatted: %s / %s", body.Data.Checkin, body.Data.Checkout)
	}
}

func TestCreate_MalformedBody(t *testing.T) {
	called := false
	h := NewReservationHandler(&mockReservationService{
		createFunc: func(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
			called = true
			return nil, nil
		},
	}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if called {
		t.Error("service must not be called for a malformed body")
	}
}

func TestCreate_Conflict(t *testing.T) {
	h := NewReservationHandler(&mockReservationService{
		createFunc: func(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
			return nil, apperrors.Conflict("Campsite already booked for the given dates. Please try other dates")
		},
	}, testLogger())

	payload := `{"first_name":"John","last_name":"Smith","email":"j@example.com","checkin":"2026-09-10","checkout":"2026-09-12"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(payload))
	w := httptest.NewRecorder()

	h.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
	}

	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, body.Code)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	h := NewReservationHandler(&mockReservationService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Reservation, error) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		},
	}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/ghost", nil)
	w := httptest.NewRecorder()

	h.GetByID(w, req, httprouter.Params{{Key: "id", Value: "ghost"}})

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestUpdate(t *testing.T) {
	var gotID string
	h := NewReservationHandler(&mockReservationService{
		updateFunc: func(ctx context.Context, id string, req *model.ReservationRequest) (*model.Reservation, error) {
			gotID = id
			return sampleReservation(), nil
		},
	}, testLogger())

	payload := `{"first_name":"John","last_name":"Smith","email":"j@example.com","checkin":"2026-09-10","checkout":"2026-09-12"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/reservations/res-1", strings.NewReader(payload))
	w := httptest.NewRecorder()

	h.Update(w, req, httprouter.Params{{Key: "id", Value: "res-1"}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if gotID != "res-1" {
		t.Errorf("expected id res-1 passed to service, got %s", gotID)
	}
}

func TestCancel(t *testing.T) {
	var gotID string
	h := NewReservationHandler(&mockReservationService{
		cancelFunc: func(ctx context.Context, id string) error {
			gotID = id
			return nil
		},
	}, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reservations/res-1", nil)
	w := httptest.NewRecorder()

	h.Cancel(w, req, httprouter.Params{{Key: "id", Value: "res-1"}})

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
	if gotID != "res-1" {
		t.Errorf("expected id res-1 passed to service, got %s", gotID)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}
