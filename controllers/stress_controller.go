package controllers

import (
	"errors"
	"net/http"
	"time"

	"stresshub/middlewares"
	"stresshub/models"
	"stresshub/scoring"
	"stresshub/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// StressAssessmentRequest is the submission payload
type StressAssessmentRequest struct {
	Answers             []int `json:"answers"`
	ShareWithSupervisor bool  `json:"shareWithSupervisor"`
	ShareWithHR         bool  `json:"shareWithHr"`
}

// UpdateSharingRequest carries optional sharing flag changes
type UpdateSharingRequest struct {
	ShareWithSupervisor *bool `json:"shareWithSupervisor"`
	ShareWithHR         *bool `json:"shareWithHr"`
}

// GetStressQuestions returns the PSS-10 questions and answering instructions
func GetStressQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"questions":    services.StressQuestions,
		"instructions": "Rate how often you have felt or thought a certain way during the past 24 hours: 0=Never, 1=Almost Never, 2=Sometimes, 3=Often, 4=Very Often",
	})
}

// SubmitStressAssessment scores a submission and stores the result
func SubmitStressAssessment(c *gin.Context) {
	var request StressAssessmentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := services.SubmitAssessment(
		c.Request.Context(),
		middlewares.CurrentUserID(c),
		c.GetString("email"),
		middlewares.CurrentRole(c),
		request.Answers,
		request.ShareWithSupervisor,
		request.ShareWithHR,
	)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process assessment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Stress assessment submitted successfully",
		"record":    result.Record,
		"breakdown": result.Breakdown,
		"workload":  result.Workload,
	})
}

// GetMyStressScore returns the caller's stored stress score
func GetMyStressScore(c *gin.Context) {
	score, err := services.GetStressScore(c.Request.Context(), middlewares.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusOK, gin.H{"message": "No stress assessment completed yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stress score"})
		return
	}
	c.JSON(http.StatusOK, score)
}

// GetMyStressHistory returns the caller's assessment history. Only the
// latest score is retained per employee, so the history holds at most
// one entry.
func GetMyStressHistory(c *gin.Context) {
	score, err := services.GetStressScore(c.Request.Context(), middlewares.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusOK, gin.H{
				"message":         "No stress assessment completed yet",
				"history":         []models.StressScore{},
				"assessmentCount": 0,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stress history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"currentScore":    score,
		"history":         []models.StressScore{*score},
		"assessmentCount": 1,
	})
}

// GetWorkloadDetails returns the caller's current workload breakdown
func GetWorkloadDetails(c *gin.Context) {
	tasks, err := services.FetchRecentTasks(c.Request.Context(), middlewares.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate workload"})
		return
	}

	c.JSON(http.StatusOK, services.ComputeWorkloadStress(tasks, time.Now()))
}

// UpdateSharing updates the sharing flags on the caller's stress score
func UpdateSharing(c *gin.Context) {
	var request UpdateSharingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	score, err := services.UpdateSharing(
		c.Request.Context(),
		middlewares.CurrentUserID(c),
		middlewares.CurrentRole(c),
		request.ShareWithSupervisor,
		request.ShareWithHR,
	)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No stress assessment found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sharing preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":             "Sharing preferences updated successfully",
		"shareWithSupervisor": score.ShareWithSupervisor,
		"shareWithHr":         score.ShareWithHR,
	})
}

// GetTeamStressScores returns the shared scores the caller may view
func GetTeamStressScores(c *gin.Context) {
	role := middlewares.CurrentRole(c)
	if role != models.RoleSupervisor && role != models.RoleHRManager {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	scores, totalMembers, err := services.TeamStressScores(c.Request.Context(), middlewares.CurrentUserID(c), role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team scores"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teamScores":   scores,
		"totalMembers": totalMembers,
		"sharedScores": len(scores),
	})
}

// isValidationError reports whether err is a scoring input violation
func isValidationError(err error) bool {
	var countErr *scoring.AnswerCountError
	var valueErr *scoring.AnswerValueError
	var workloadErr *scoring.WorkloadError
	return errors.As(err, &countErr) || errors.As(err, &valueErr) || errors.As(err, &workloadErr)
}
