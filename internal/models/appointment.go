package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	// StatusAvailable is a display sentinel for empty slots; it is never
	// persisted on an appointment.
	StatusAvailable AppointmentStatus = "available"
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// LiveStatuses are the statuses under which an appointment still occupies
// its slot.
var LiveStatuses = []AppointmentStatus{StatusPending, StatusConfirmed}

// Persistable reports whether s is one of the five statuses an appointment
// record may carry.
func (s AppointmentStatus) Persistable() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Live reports whether an appointment in status s still blocks its slot.
func (s AppointmentStatus) Live() bool {
	return s == StatusPending || s == StatusConfirmed
}

var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// CanTransitionTo reports whether the status change s -> next is allowed.
// Completed, cancelled and no_show are terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Patient holds the contact details submitted with a booking. The validate
// tags are the booking-time schema; "phone" is a custom rule registered by
// the booking service.
type Patient struct {
	Name   string `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Age    int    `bson:"age" json:"age" validate:"required,min=1,max=120"`
	Gender string `bson:"gender" json:"gender" validate:"required,oneof=Male Female Other"`
	Phone  string `bson:"phone" json:"phone" validate:"required,phone"`
	Email  string `bson:"email" json:"email" validate:"required,email"`
	Reason string `bson:"reason" json:"reason" validate:"required,min=10,max=500"`
}

// Appointment is one reserved doctor/date/slot tuple. Date is always the
// facility-local calendar day at midnight; TimeSlot is "HH:MM-HH:MM". The
// (doctorId, date, timeSlot) tuple is unique among live appointments,
// enforced by a partial unique index in the store.
type Appointment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DoctorID     primitive.ObjectID `bson:"doctorId" json:"doctorId"`
	DepartmentID primitive.ObjectID `bson:"departmentId" json:"departmentId"`
	Date         time.Time          `bson:"date" json:"date"`
	TimeSlot     string             `bson:"timeSlot" json:"timeSlot"`
	Status       AppointmentStatus  `bson:"status" json:"status"`
	Patient      Patient            `bson:"patient" json:"patient"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
