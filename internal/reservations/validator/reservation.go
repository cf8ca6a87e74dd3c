package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	reserrors "campsite/internal/reservations/errors"
	"campsite/pkg/config"
	"campsite/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// ReservationValidator applies the field checks and the booking rules. It is
// stateless apart from its configuration and never touches the ledger, so
// every rejection is guaranteed to happen before any mutation is attempted.
type ReservationValidator struct {
	validate       *validator.Validate
	maxStayDays    int
	minAdvanceDays int
	maxAdvanceDays int

	// Now is the clock the advance-window rule reads. Tests pin it.
	Now func() time.Time
}

func NewReservationValidator(cfg *config.Config) *ReservationValidator {
	return &ReservationValidator{
		validate:       validator.New(),
		maxStayDays:    cfg.MaxStayDays,
		minAdvanceDays: cfg.MinAdvanceDays,
		maxAdvanceDays: cfg.MaxAdvanceDays,
		Now:            time.Now,
	}
}

// ValidateRequest runs all checks on a create/update request and returns the
// parsed date range. Field failures come back as ValidationErrors; date rule
// failures as the domain sentinels.
func (v *ReservationValidator) ValidateRequest(req *model.ReservationRequest) (model.DateRange, error) {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return model.DateRange{}, translateValidationErrors(validationErrs)
		}
		return model.DateRange{}, err
	}

	r, err := v.ParseRange(req.Checkin, req.Checkout)
	if err != nil {
		return model.DateRange{}, err
	}
	if err := v.ValidateRange(r); err != nil {
		return model.DateRange{}, err
	}
	return r, nil
}

// ParseRange parses both dates or fails with ErrInvalidFormat.
func (v *ReservationValidator) ParseRange(checkin, checkout string) (model.DateRange, error) {
	in, err := model.ParseDay(checkin)
	if err != nil {
		return model.DateRange{}, reserrors.ErrInvalidFormat
	}
	out, err := model.ParseDay(checkout)
	if err != nil {
		return model.DateRange{}, reserrors.ErrInvalidFormat
	}
	return model.DateRange{Checkin: in, Checkout: out}, nil
}

// ValidateRange applies ordering, max-stay and advance-window rules.
func (v *ReservationValidator) ValidateRange(r model.DateRange) error {
	if r.Checkout.Before(r.Checkin) {
		return reserrors.ErrInvalidRange
	}
	if r.Nights() > v.maxStayDays {
		return reserrors.ErrStayTooLong
	}

	today := model.Day(v.Now())
	earliest := today.AddDate(0, 0, v.minAdvanceDays)
	latest := today.AddDate(0, 0, v.maxAdvanceDays)
	if r.Checkin.Before(earliest) || r.Checkin.After(latest) {
		return reserrors.ErrOutOfBookingWindow
	}
	return nil
}

// AvailabilityRange parses an availability query, substituting defaults for
// missing dates. The ledger itself rejects anything outside its horizon, so
// only format and ordering are checked here.
func (v *ReservationValidator) AvailabilityRange(checkin, checkout string, defaults model.DateRange) (model.DateRange, error) {
	r := defaults
	if checkin != "" {
		in, err := model.ParseDay(checkin)
		if err != nil {
			return model.DateRange{}, reserrors.ErrInvalidFormat
		}
		r.Checkin = in
	}
	if checkout != "" {
		out, err := model.ParseDay(checkout)
		if err != nil {
			return model.DateRange{}, reserrors.ErrInvalidFormat
		}
		r.Checkout = out
	}
	if r.Checkout.Before(r.Checkin) {
		return model.DateRange{}, reserrors.ErrInvalidRange
	}
	return r, nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var out ValidationErrors
	for _, err := range errs {
		message := err.Error()
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		}
		out = append(out, ValidationError{Field: err.Field(), Message: message})
	}
	return out
}
