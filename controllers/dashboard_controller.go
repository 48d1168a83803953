package controllers

import (
	"errors"
	"net/http"
	"time"

	"stresshub/db"
	"stresshub/middlewares"
	"stresshub/models"
	"stresshub/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EmployeeDashboard summarises the caller's own stress and task state
func EmployeeDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middlewares.CurrentUserID(c)

	response := gin.H{"userId": userID}

	score, err := services.GetStressScore(ctx, userID)
	switch {
	case err == nil:
		response["stressScore"] = score
	case errors.Is(err, mongo.ErrNoDocuments):
		response["stressScore"] = nil
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	taskFilter := bson.M{"employeeId": userID}
	totalTasks, err := db.GetCollection(db.TasksCollection).CountDocuments(ctx, taskFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}
	taskFilter["status"] = models.TaskPending
	pendingTasks, err := db.GetCollection(db.TasksCollection).CountDocuments(ctx, taskFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	unread, err := db.GetCollection(db.NotificationsCollection).CountDocuments(ctx,
		bson.M{"userId": userID, "read": false})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	response["totalTasks"] = totalTasks
	response["pendingTasks"] = pendingTasks
	response["completedTasks"] = totalTasks - pendingTasks
	response["unreadNotifications"] = unread

	c.JSON(http.StatusOK, response)
}

// SupervisorDashboard summarises the caller's team
func SupervisorDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middlewares.CurrentUserID(c)

	scores, totalMembers, err := services.TeamStressScores(ctx, userID, models.RoleSupervisor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team data"})
		return
	}

	memberIDs, err := services.TeamMemberIDs(ctx, userID, models.RoleSupervisor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team data"})
		return
	}

	teamTasks := int64(0)
	pendingReviews := int64(0)
	if len(memberIDs) > 0 {
		taskCollection := db.GetCollection(db.TasksCollection)
		teamTasks, err = taskCollection.CountDocuments(ctx, bson.M{"employeeId": bson.M{"$in": memberIDs}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team data"})
			return
		}
		pendingReviews, err = taskCollection.CountDocuments(ctx, bson.M{
			"employeeId": bson.M{"$in": memberIDs},
			"status":     models.TaskPending,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team data"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"teamMembers":    totalMembers,
		"teamTasks":      teamTasks,
		"pendingReviews": pendingReviews,
		"sharedScores":   scores,
	})
}

// HRDashboard summarises the organisation for HR managers
func HRDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	headcounts := gin.H{}
	for _, role := range []models.Role{models.RoleEmployee, models.RoleSupervisor, models.RolePsychiatrist} {
		count, err := db.GetCollection(db.UsersCollection).CountDocuments(ctx, bson.M{"role": role})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch organisation data"})
			return
		}
		headcounts[string(role)] = count
	}

	scores, _, err := services.TeamStressScores(ctx, middlewares.CurrentUserID(c), models.RoleHRManager)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch organisation data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"headcounts":   headcounts,
		"sharedScores": scores,
	})
}

// PsychiatristDashboard summarises the caller's consultation schedule.
// The consultant record is matched to the psychiatrist by display name.
func PsychiatristDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middlewares.CurrentUserID(c)

	consultant, err := services.ConsultantForPsychiatrist(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusOK, gin.H{
				"message":  "No consultant profile linked to your account yet",
				"bookings": []models.Booking{},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	bookings, err := services.ConsultantBookings(ctx, consultant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	now := time.Now()
	pendingRequests := 0
	upcomingSessions := 0
	completedSessions := 0
	for _, booking := range bookings {
		switch booking.Status {
		case models.BookingPending:
			pendingRequests++
		case models.BookingApproved:
			if booking.BookingDate.After(now) {
				upcomingSessions++
			}
		case models.BookingCompleted:
			completedSessions++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"consultant":        consultant,
		"bookings":          bookings,
		"pendingRequests":   pendingRequests,
		"upcomingSessions":  upcomingSessions,
		"completedSessions": completedSessions,
	})
}
