package handlers

import (
	"time"

	"github.com/carebook/hospital-api/internal/booking"
	"github.com/carebook/hospital-api/internal/store"
)

// Handler bundles the stores and the booking service for the gin routes.
// Now is swappable so date gating can be tested against a fixed clock.
type Handler struct {
	Appointments store.AppointmentStore
	Doctors      store.DoctorStore
	Booking      *booking.Service
	Now          func() time.Time
}

func NewHandler(appointments store.AppointmentStore, doctors store.DoctorStore, svc *booking.Service) *Handler {
	return &Handler{
		Appointments: appointments,
		Doctors:      doctors,
		Booking:      svc,
		Now:          time.Now,
	}
}
