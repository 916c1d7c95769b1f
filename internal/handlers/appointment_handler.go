package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebook/hospital-api/internal/booking"
	"github.com/carebook/hospital-api/internal/models"
	"github.com/carebook/hospital-api/internal/store"
)

type CreateAppointmentRequest struct {
	DoctorID     string         `json:"doctorId" binding:"required"`
	DepartmentID string         `json:"departmentId" binding:"required"`
	Date         string         `json:"date" binding:"required"`
	TimeSlot     string         `json:"timeSlot" binding:"required"`
	Patient      models.Patient `json:"patient"`
}

// CreateAppointment runs the booking transaction. A taken slot comes back as
// 409 naming the slot; patient/slot validation problems come back as 400 with
// per-field messages.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	doctorID, err := primitive.ObjectIDFromHex(req.DoctorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doctor ID"})
		return
	}
	departmentID, err := primitive.ObjectIDFromHex(req.DepartmentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD or RFC3339"})
		return
	}

	apt, err := h.Booking.CreateAppointment(c.Request.Context(), booking.CreateRequest{
		DoctorID:     doctorID,
		DepartmentID: departmentID,
		Date:         date,
		TimeSlot:     req.TimeSlot,
		Patient:      req.Patient,
	})
	if err != nil {
		h.bookingError(c, err, req.TimeSlot)
		return
	}

	c.JSON(http.StatusCreated, apt)
}

// GetAppointments serves the staff list and calendar views with optional
// doctor, status and date-range filters, sorted chronologically.
func (h *Handler) GetAppointments(c *gin.Context) {
	filter := store.AppointmentFilter{}

	if doctorIDStr := c.Query("doctorId"); doctorIDStr != "" {
		doctorID, err := primitive.ObjectIDFromHex(doctorIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doctor ID"})
			return
		}
		filter.DoctorID = &doctorID
	}
	if status := c.Query("status"); status != "" {
		s := models.AppointmentStatus(status)
		if !s.Persistable() {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid status %q", status)})
			return
		}
		filter.Status = s
	}
	if startDateStr := c.Query("startDate"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			filter.StartDate = &startDate
		}
	}
	if endDateStr := c.Query("endDate"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			filter.EndDate = &endDate
		}
	}

	appointments, err := h.Appointments.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointments"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	apt, err := h.Appointments.FindByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointment"})
		return
	}

	c.JSON(http.StatusOK, apt)
}

// UpdateAppointmentStatus applies one lifecycle transition
// (pending -> confirmed -> completed, cancellation and no_show from any live
// status).
func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	var req struct {
		Status models.AppointmentStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	apt, err := h.Booking.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.bookingError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, apt)
}

func (h *Handler) bookingError(c *gin.Context, err error, slot string) {
	var verr *booking.ValidationError
	switch {
	case errors.Is(err, booking.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Time slot %s is already booked", slot)})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": verr.Fields})
	case errors.Is(err, booking.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// parseDate accepts a bare calendar day or a full RFC3339 timestamp; the
// time-of-day component is discarded downstream either way.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
