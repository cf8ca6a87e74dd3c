package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"campsite/internal/reservations/engine"
	reserrors "campsite/internal/reservations/errors"
	"campsite/internal/reservations/events"
	"campsite/internal/reservations/store"
	"campsite/internal/reservations/validator"
	"campsite/pkg/config"
	apperrors "campsite/pkg/errors"
	"campsite/pkg/model"
	"campsite/pkg/sanitizer"

	"github.com/google/uuid"
)

type ReservationService interface {
	GetAvailability(ctx context.Context, checkin, checkout string) ([]string, error)
	Create(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	Update(ctx context.Context, id string, req *model.ReservationRequest) (*model.Reservation, error)
	Cancel(ctx context.Context, id string) error
}

// reservationService composes the availability engine and the record store.
// mu serializes every compound mutation (claim+put, swap+update,
// release+remove) so the ledger and the store can never disagree about who
// owns a day. Availability reads bypass mu and share the engine's read lock.
type reservationService struct {
	mu        sync.Mutex
	engine    *engine.Engine
	store     *store.Store
	validator *validator.ReservationValidator
	events    events.Publisher
	cfg       *config.Config
}

func NewReservationService(
	eng *engine.Engine,
	st *store.Store,
	v *validator.ReservationValidator,
	pub events.Publisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		engine:    eng,
		store:     st,
		validator: v,
		events:    pub,
		cfg:       cfg,
	}
}

func (s *reservationService) GetAvailability(ctx context.Context, checkin, checkout string) ([]string, error) {
	defaults := model.DateRange{
		Checkin:  model.Day(time.Now()),
		Checkout: s.engine.Horizon().Checkout,
	}

	r, err := s.validator.AvailabilityRange(checkin, checkout, defaults)
	if err != nil {
		return nil, s.mapError(err, "")
	}

	days, err := s.engine.QueryAvailable(r)
	if err != nil {
		return nil, s.mapError(err, "")
	}

	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.Format(model.DateLayout))
	}
	return out, nil
}

func (s *reservationService) Create(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
	s.sanitize(req)

	r, err := s.validator.ValidateRequest(req)
	if err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return nil, s.mapError(err, "")
	}

	now := time.Now()
	res := &model.Reservation{
		ID:        uuid.NewString(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Range:     r,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	if err := s.engine.TryClaim(r, res.ID); err != nil {
		s.mu.Unlock()
		return nil, s.mapError(err, "")
	}
	if err := s.store.Put(res); err != nil {
		// The days are claimed but no record exists for their owner. Roll the
		// claim back before reporting so the cross-structure invariant holds.
		if releaseErr := s.engine.Release(r); releaseErr != nil {
			s.cfg.Log.Error("Failed to roll back claim after store failure", "id", res.ID, "error", releaseErr)
		}
		s.mu.Unlock()
		s.cfg.Log.Error("Failed to store reservation", "id", res.ID, "error", err)
		return nil, apperrors.Internal("Failed to store reservation", err)
	}
	s.mu.Unlock()

	s.cfg.Log.Info("Reservation created",
		"id", res.ID,
		"checkin", r.Checkin.Format(model.DateLayout),
		"checkout", r.Checkout.Format(model.DateLayout),
	)
	s.events.Publish(ctx, events.TypeCreated, res)
	return res, nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	res, err := s.store.Get(id)
	if err != nil {
		return nil, s.mapError(err, id)
	}
	return res, nil
}

func (s *reservationService) Update(ctx context.Context, id string, req *model.ReservationRequest) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	s.sanitize(req)

	newRange, err := s.validator.ValidateRequest(req)
	if err != nil {
		s.cfg.Log.Warn("Reservation update validation failed", "id", id, "error", err)
		return nil, s.mapError(err, id)
	}

	s.mu.Lock()
	existing, err := s.store.Get(id)
	if err != nil {
		s.mu.Unlock()
		return nil, s.mapError(err, id)
	}

	updated := &model.Reservation{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Range:     newRange,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now(),
	}

	if !newRange.Equal(existing.Range) {
		if err := s.engine.Swap(existing.Range, newRange, id); err != nil {
			s.mu.Unlock()
			return nil, s.mapError(err, id)
		}
	}
	if err := s.store.Update(updated); err != nil {
		// Get succeeded under the same lock, so the record must still exist.
		s.mu.Unlock()
		return nil, apperrors.Internal("Failed to update reservation", err)
	}
	s.mu.Unlock()

	s.cfg.Log.Info("Reservation updated",
		"id", id,
		"checkin", newRange.Checkin.Format(model.DateLayout),
		"checkout", newRange.Checkout.Format(model.DateLayout),
	)
	s.events.Publish(ctx, events.TypeUpdated, updated)
	return updated, nil
}

func (s *reservationService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	s.mu.Lock()
	res, err := s.store.Get(id)
	if err != nil {
		s.mu.Unlock()
		return s.mapError(err, id)
	}
	if err := s.engine.Release(res.Range); err != nil {
		s.mu.Unlock()
		s.cfg.Log.Error("Failed to release reservation days", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel reservation", err)
	}
	if _, err := s.store.Remove(id); err != nil {
		s.mu.Unlock()
		return apperrors.Internal("Failed to cancel reservation", err)
	}
	s.mu.Unlock()

	s.cfg.Log.Info("Reservation cancelled", "id", id)
	s.events.Publish(ctx, events.TypeCancelled, res)
	return nil
}

func (s *reservationService) sanitize(req *model.ReservationRequest) {
	req.FirstName = sanitizer.NormalizeName(req.FirstName)
	req.LastName = sanitizer.NormalizeName(req.LastName)
	req.Email = sanitizer.NormalizeEmail(req.Email)
}

// mapError translates domain sentinels and validator errors into the typed
// AppErrors the transport layer renders.
func (s *reservationService) mapError(err error, id string) *apperrors.AppError {
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(err, &fieldErrs):
		return apperrors.Validation("Invalid reservation input", map[string]any{"fields": fieldErrs})
	case errors.Is(err, reserrors.ErrInvalidFormat):
		return apperrors.Validation(err.Error(), map[string]any{"reason": "INVALID_FORMAT"})
	case errors.Is(err, reserrors.ErrInvalidRange):
		return apperrors.Validation(err.Error(), map[string]any{"reason": "INVALID_RANGE"})
	case errors.Is(err, reserrors.ErrStayTooLong):
		return apperrors.Validation(
			fmt.Sprintf("Campsite cannot be booked for more than %d days", s.cfg.MaxStayDays),
			map[string]any{"reason": "STAY_TOO_LONG"},
		)
	case errors.Is(err, reserrors.ErrOutOfBookingWindow):
		return apperrors.Validation(
			fmt.Sprintf("Checkin must be between %d and %d days from today", s.cfg.MinAdvanceDays, s.cfg.MaxAdvanceDays),
			map[string]any{"reason": "OUT_OF_BOOKING_WINDOW"},
		)
	case errors.Is(err, reserrors.ErrOutOfRange):
		return apperrors.Validation(err.Error(), map[string]any{"reason": "OUT_OF_RANGE"})
	case errors.Is(err, reserrors.ErrCampsiteUnavailable):
		return apperrors.Conflict("Campsite already booked for the given dates. Please try other dates")
	case errors.Is(err, reserrors.ErrNotFound):
		if id != "" {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		return apperrors.NotFound("Reservation")
	default:
		return apperrors.Internal("Unexpected reservation error", err)
	}
}
