// Package store is the persistence boundary of the booking core. The mongo
// implementation owns the storage-level uniqueness guard; everything above it
// programs against the interfaces so business logic stays testable without a
// running database.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebook/hospital-api/internal/models"
	"github.com/carebook/hospital-api/internal/scheduling"
)

var (
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateSlot is returned when the unique (doctorId, date, timeSlot)
	// index rejects an insert, i.e. a concurrent booking won the slot.
	ErrDuplicateSlot = errors.New("slot already taken")
)

// AppointmentFilter narrows List results. Zero-valued fields are ignored.
type AppointmentFilter struct {
	DoctorID  *primitive.ObjectID
	Status    models.AppointmentStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// AppointmentStore stores and retrieves appointment documents. The tuple
// (doctorId, date, timeSlot) must be unique among live appointments at the
// storage layer, not merely in application logic.
type AppointmentStore interface {
	Insert(ctx context.Context, apt *models.Appointment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error)
	// FindLive returns the pending or confirmed appointment occupying the
	// given doctor/day/slot tuple, or ErrNotFound.
	FindLive(ctx context.Context, doctorID primitive.ObjectID, day time.Time, slot scheduling.Slot) (*models.Appointment, error)
	// BookedSlots returns the slot values of all live appointments for the
	// doctor on the given calendar day.
	BookedSlots(ctx context.Context, doctorID primitive.ObjectID, day time.Time) (map[scheduling.Slot]struct{}, error)
	List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AppointmentStatus) (*models.Appointment, error)
}

// DoctorStore retrieves doctor and department configuration.
type DoctorStore interface {
	FindDoctor(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error)
	ListDoctors(ctx context.Context, departmentID primitive.ObjectID) ([]models.Doctor, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
}
