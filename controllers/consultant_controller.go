package controllers

import (
	"errors"
	"net/http"

	"stresshub/models"
	"stresshub/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ConsultantRequest is the payload HR managers use to create or update
// a consultant and their weekly availability slots.
type ConsultantRequest struct {
	Name               string                `json:"name" binding:"required"`
	Qualifications     string                `json:"qualifications"`
	RegistrationNumber string                `json:"registrationNumber"`
	Hospital           string                `json:"hospital"`
	Specialization     string                `json:"specialization"`
	Availabilities     []models.Availability `json:"availabilities"`
}

func (r ConsultantRequest) validate() error {
	for _, av := range r.Availabilities {
		if av.DayOfWeek < 0 || av.DayOfWeek > 6 {
			return errors.New("dayOfWeek must be between 0 (Monday) and 6 (Sunday)")
		}
	}
	return nil
}

func (r ConsultantRequest) toModel() models.Consultant {
	return models.Consultant{
		Name:               r.Name,
		Qualifications:     r.Qualifications,
		RegistrationNumber: r.RegistrationNumber,
		Hospital:           r.Hospital,
		Specialization:     r.Specialization,
		Availabilities:     r.Availabilities,
	}
}

// GetAvailableConsultants lists every consultant with their slots
func GetAvailableConsultants(c *gin.Context) {
	consultants, err := services.ListConsultants(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch consultants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultants": consultants, "total": len(consultants)})
}

// GetConsultant returns a single consultant by id
func GetConsultant(c *gin.Context) {
	consultant, err := services.GetConsultant(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Consultant not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid consultant id"})
		return
	}
	c.JSON(http.StatusOK, consultant)
}

// CreateConsultant registers a new consultant (HR managers only)
func CreateConsultant(c *gin.Context) {
	var request ConsultantRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := request.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	consultant, err := services.CreateConsultant(c.Request.Context(), request.toModel())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create consultant"})
		return
	}
	c.JSON(http.StatusCreated, consultant)
}

// UpdateConsultant replaces a consultant's details (HR managers only)
func UpdateConsultant(c *gin.Context) {
	var request ConsultantRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := request.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	consultant, err := services.UpdateConsultant(c.Request.Context(), c.Param("id"), request.toModel())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Consultant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update consultant"})
		return
	}
	c.JSON(http.StatusOK, consultant)
}

// DeleteConsultant removes a consultant, cancelling their open bookings
// (HR managers only)
func DeleteConsultant(c *gin.Context) {
	err := services.DeleteConsultant(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Consultant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete consultant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Consultant deleted successfully"})
}
