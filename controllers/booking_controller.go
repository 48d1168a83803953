package controllers

import (
	"errors"
	"net/http"
	"time"

	"stresshub/middlewares"
	"stresshub/models"
	"stresshub/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateBookingRequest reserves a consultation slot
type CreateBookingRequest struct {
	ConsultantID    string    `json:"consultantId" binding:"required"`
	EmployeeID      string    `json:"employeeId"`
	BookingDate     time.Time `json:"bookingDate" binding:"required"`
	DurationMinutes int       `json:"durationMinutes"`
	Notes           string    `json:"notes"`
}

// RescheduleBookingRequest moves a booking to a new slot
type RescheduleBookingRequest struct {
	BookingDate     time.Time `json:"bookingDate" binding:"required"`
	DurationMinutes int       `json:"durationMinutes"`
}

// BookingStatusRequest carries a consultant-side status decision
type BookingStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
	Reason string               `json:"reason"`
}

// CreateBooking books a consultation for the caller
func CreateBooking(c *gin.Context) {
	var request CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID := middlewares.CurrentUserID(c)
	booking, err := services.CreateBooking(c.Request.Context(),
		request.ConsultantID, userID, userID,
		request.BookingDate, request.DurationMinutes, request.Notes)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// CreateBookingForEmployee lets a supervisor or HR manager book a
// consultation on a team member's behalf
func CreateBookingForEmployee(c *gin.Context) {
	var request CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if request.EmployeeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employeeId is required"})
		return
	}

	viewerID := middlewares.CurrentUserID(c)
	role := middlewares.CurrentRole(c)
	member, err := services.IsTeamMember(c.Request.Context(), viewerID, role, request.EmployeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify team membership"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "Employee is not on your team"})
		return
	}

	booking, err := services.CreateBooking(c.Request.Context(),
		request.ConsultantID, request.EmployeeID, viewerID,
		request.BookingDate, request.DurationMinutes, request.Notes)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetMyBookings lists the caller's bookings
func GetMyBookings(c *gin.Context) {
	bookings, err := services.MyBookings(c.Request.Context(), middlewares.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "total": len(bookings)})
}

// GetTeamBookings lists the caller's team members' bookings
func GetTeamBookings(c *gin.Context) {
	bookings, err := services.TeamBookings(c.Request.Context(),
		middlewares.CurrentUserID(c), middlewares.CurrentRole(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "total": len(bookings)})
}

// RescheduleBooking moves one of the caller's bookings to a new slot
func RescheduleBooking(c *gin.Context) {
	var request RescheduleBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	booking, err := services.RescheduleBooking(c.Request.Context(),
		c.Param("id"), middlewares.CurrentUserID(c),
		request.BookingDate, request.DurationMinutes)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelBooking cancels one of the caller's open future bookings
func CancelBooking(c *gin.Context) {
	booking, err := services.CancelBooking(c.Request.Context(),
		c.Param("id"), middlewares.CurrentUserID(c))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully", "booking": booking})
}

// UpdateBookingStatus applies an approval, rejection or completion
// decision (psychiatrists and HR managers only)
func UpdateBookingStatus(c *gin.Context) {
	var request BookingStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	switch request.Status {
	case models.BookingApproved, models.BookingRejected, models.BookingCompleted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be approved, rejected or completed"})
		return
	}

	booking, err := services.UpdateBookingStatus(c.Request.Context(),
		c.Param("id"), request.Status, request.Reason)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// respondBookingError maps booking service failures onto HTTP statuses
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrNotBookingOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Booking does not belong to you"})
	case errors.Is(err, services.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Consultant already has a booking at that time"})
	case errors.Is(err, services.ErrBookingPast),
		errors.Is(err, services.ErrSlotUnavailable),
		errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process booking"})
	}
}
