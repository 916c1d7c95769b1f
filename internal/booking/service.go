// Package booking implements the appointment booking transaction and the
// staff-facing status transitions.
package booking

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebook/hospital-api/internal/models"
	"github.com/carebook/hospital-api/internal/scheduling"
	"github.com/carebook/hospital-api/internal/store"
)

var (
	// ErrSlotTaken signals that a live appointment already occupies the
	// requested doctor/date/slot tuple. Terminal for the request; the caller
	// picks another slot.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrInvalidTransition signals a status change outside the allowed
	// lifecycle graph.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError carries per-field messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Used by the Patient schema; accepts an optional + and 7-15 digits.
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// Service runs booking transactions against the persistence collaborator.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	appointments store.AppointmentStore
	doctors      store.DoctorStore
	validate     *validator.Validate
	now          func() time.Time
}

func NewService(appointments store.AppointmentStore, doctors store.DoctorStore) *Service {
	return &Service{
		appointments: appointments,
		doctors:      doctors,
		validate:     newValidator(),
		now:          time.Now,
	}
}

// CreateRequest is the booking payload after HTTP decoding.
type CreateRequest struct {
	DoctorID     primitive.ObjectID
	DepartmentID primitive.ObjectID
	Date         time.Time
	TimeSlot     string
	Patient      models.Patient
}

// CreateAppointment reserves a slot. Preconditions run in order: slot
// grammar, doctor existence, no live appointment on the tuple, patient
// schema. The insert relies on the store's unique index as the last word on
// conflicts; a duplicate-key rejection surfaces as ErrSlotTaken exactly like
// the pre-check.
func (s *Service) CreateAppointment(ctx context.Context, req CreateRequest) (*models.Appointment, error) {
	slot, err := scheduling.ParseSlot(req.TimeSlot)
	if err != nil {
		return nil, fieldError("timeSlot", err.Error())
	}

	if _, err := s.doctors.FindDoctor(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	day := scheduling.StartOfDay(req.Date)
	existing, err := s.appointments.FindLive(ctx, req.DoctorID, day, slot)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	if err := s.validatePatient(req.Patient); err != nil {
		return nil, err
	}

	now := s.now()
	apt := &models.Appointment{
		ID:           primitive.NewObjectID(),
		DoctorID:     req.DoctorID,
		DepartmentID: req.DepartmentID,
		Date:         day,
		TimeSlot:     slot.String(),
		Status:       models.StatusPending,
		Patient:      req.Patient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.appointments.Insert(ctx, apt); err != nil {
		if errors.Is(err, store.ErrDuplicateSlot) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return apt, nil
}

// UpdateStatus moves an appointment along the lifecycle graph:
// pending -> confirmed -> completed, with cancelled and no_show reachable
// from any live status. Terminal statuses reject every transition.
func (s *Service) UpdateStatus(ctx context.Context, id primitive.ObjectID, next models.AppointmentStatus) (*models.Appointment, error) {
	if !next.Persistable() {
		return nil, fieldError("status", fmt.Sprintf("must be one of pending, confirmed, completed, cancelled, no_show; got %q", next))
	}
	apt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !apt.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, apt.Status, next)
	}
	return s.appointments.UpdateStatus(ctx, id, next)
}

func (s *Service) validatePatient(p models.Patient) error {
	err := s.validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = patientFieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func patientFieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Int {
			return "must be at least " + fe.Param()
		}
		return "must be at least " + fe.Param() + " characters"
	case "max":
		if fe.Kind() == reflect.Int {
			return "must be at most " + fe.Param()
		}
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	}
	return "is invalid"
}
