package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebook/hospital-api/internal/scheduling"
	"github.com/carebook/hospital-api/internal/store"
)

func (h *Handler) GetDepartments(c *gin.Context) {
	departments, err := h.Doctors.ListDepartments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve departments"})
		return
	}
	c.JSON(http.StatusOK, departments)
}

func (h *Handler) GetDepartmentDoctors(c *gin.Context) {
	departmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}

	doctors, err := h.Doctors.ListDoctors(c.Request.Context(), departmentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve doctors"})
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// GetDoctorSlots returns the bookable slots for a doctor on a given day,
// chronologically ordered. A day gated off by the calendar (past date, weekly
// off, holiday) yields an empty list, not an error.
func (h *Handler) GetDoctorSlots(c *gin.Context) {
	doctorID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doctor ID"})
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing date, use YYYY-MM-DD"})
		return
	}

	doctor, err := h.Doctors.FindDoctor(c.Request.Context(), doctorID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve doctor"})
		return
	}

	if !scheduling.IsDateAvailable(h.Now(), date, doctor.Schedule) {
		c.JSON(http.StatusOK, []scheduling.Slot{})
		return
	}

	booked, err := h.Appointments.BookedSlots(c.Request.Context(), doctorID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve booked slots"})
		return
	}

	c.JSON(http.StatusOK, scheduling.AvailableSlots(doctor.Schedule, booked))
}
