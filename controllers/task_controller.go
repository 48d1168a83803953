package controllers

import (
	"net/http"
	"time"

	"stresshub/db"
	"stresshub/middlewares"
	"stresshub/models"
	"stresshub/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateTaskRequest is the task creation payload
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Duration    int        `json:"duration"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskRequest carries optional task field changes
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	Duration    *int       `json:"duration"`
	DueDate     *time.Time `json:"dueDate"`
}

// CreateTask records a self-assigned task for the caller
func CreateTask(c *gin.Context) {
	var request CreateTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	priority := models.TaskPriority(request.Priority)
	switch priority {
	case "":
		priority = models.PriorityMedium
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be low, medium or high"})
		return
	}

	if request.Duration < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duration cannot be negative"})
		return
	}

	userID := middlewares.CurrentUserID(c)
	now := time.Now()
	task := models.Task{
		Title:        request.Title,
		Description:  request.Description,
		Status:       models.TaskPending,
		Priority:     priority,
		Duration:     request.Duration,
		DueDate:      request.DueDate,
		EmployeeID:   userID,
		AssignedByID: userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := db.GetCollection(db.TasksCollection).InsertOne(c.Request.Context(), task)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid
	}

	c.JSON(http.StatusCreated, task)
}

// GetMyTasks lists the caller's tasks, newest first
func GetMyTasks(c *gin.Context) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.GetCollection(db.TasksCollection).Find(c.Request.Context(),
		bson.M{"employeeId": middlewares.CurrentUserID(c)}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	defer cursor.Close(c.Request.Context())

	var tasks []models.Task
	if err := cursor.All(c.Request.Context(), &tasks); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdateTask applies partial changes to one of the caller's tasks
func UpdateTask(c *gin.Context) {
	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return
	}

	var request UpdateTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	set, ok := buildTaskUpdate(c, request)
	if !ok {
		return
	}

	filter := bson.M{"_id": taskID, "employeeId": middlewares.CurrentUserID(c)}
	result := db.GetCollection(db.TasksCollection).FindOneAndUpdate(c.Request.Context(),
		filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var task models.Task
	if err := result.Decode(&task); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// AssignTaskRequest is the supervisor task assignment payload
type AssignTaskRequest struct {
	EmployeeID  string     `json:"employeeId" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Duration    int        `json:"duration"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskStatusRequest toggles a task between pending and completed
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AssignTask lets a supervisor assign a task to one of their team members
func AssignTask(c *gin.Context) {
	var request AssignTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	priority := models.TaskPriority(request.Priority)
	switch priority {
	case "":
		priority = models.PriorityMedium
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be low, medium or high"})
		return
	}
	if request.Duration < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duration cannot be negative"})
		return
	}

	supervisorID := middlewares.CurrentUserID(c)
	member, err := services.IsTeamMember(c.Request.Context(), supervisorID, middlewares.CurrentRole(c), request.EmployeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify team membership"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "Employee is not on your team"})
		return
	}

	now := time.Now()
	task := models.Task{
		Title:        request.Title,
		Description:  request.Description,
		Status:       models.TaskPending,
		Priority:     priority,
		Duration:     request.Duration,
		DueDate:      request.DueDate,
		EmployeeID:   request.EmployeeID,
		AssignedByID: supervisorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := db.GetCollection(db.TasksCollection).InsertOne(c.Request.Context(), task)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign task"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid
	}

	services.NotifyUser(c.Request.Context(), task.EmployeeID, "task_assigned",
		"You have been assigned a new task: "+task.Title)

	c.JSON(http.StatusCreated, task)
}

// GetTeamTasks lists the tasks of the caller's team members
func GetTeamTasks(c *gin.Context) {
	memberIDs, err := services.TeamMemberIDs(c.Request.Context(),
		middlewares.CurrentUserID(c), middlewares.CurrentRole(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve team"})
		return
	}
	if len(memberIDs) == 0 {
		c.JSON(http.StatusOK, []models.Task{})
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.GetCollection(db.TasksCollection).Find(c.Request.Context(),
		bson.M{"employeeId": bson.M{"$in": memberIDs}}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team tasks"})
		return
	}
	defer cursor.Close(c.Request.Context())

	var tasks []models.Task
	if err := cursor.All(c.Request.Context(), &tasks); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode team tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetTeamMembers lists the employees the caller supervises
func GetTeamMembers(c *gin.Context) {
	members, err := services.TeamMembers(c.Request.Context(),
		middlewares.CurrentUserID(c), middlewares.CurrentRole(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team members"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members, "total": len(members)})
}

// GetTask returns a single task the caller may view: their own, one
// they assigned, or any team member's task for supervisors
func GetTask(c *gin.Context) {
	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return
	}

	var task models.Task
	if err := db.GetCollection(db.TasksCollection).FindOne(c.Request.Context(), bson.M{"_id": taskID}).Decode(&task); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if !canViewTask(c, task) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus toggles a task between pending and completed. The
// task owner, its assigner, and the owner's supervisor may change it.
func UpdateTaskStatus(c *gin.Context) {
	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return
	}

	var request UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status := models.TaskStatus(request.Status)
	if status != models.TaskPending && status != models.TaskCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be pending or completed"})
		return
	}

	var task models.Task
	if err := db.GetCollection(db.TasksCollection).FindOne(c.Request.Context(), bson.M{"_id": taskID}).Decode(&task); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	if !canViewTask(c, task) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	result := db.GetCollection(db.TasksCollection).FindOneAndUpdate(c.Request.Context(),
		bson.M{"_id": taskID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err := result.Decode(&task); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTeamTask applies partial changes to a team member's task
// (supervisors only)
func UpdateTeamTask(c *gin.Context) {
	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return
	}

	var request UpdateTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var task models.Task
	if err := db.GetCollection(db.TasksCollection).FindOne(c.Request.Context(), bson.M{"_id": taskID}).Decode(&task); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	member, err := services.IsTeamMember(c.Request.Context(),
		middlewares.CurrentUserID(c), middlewares.CurrentRole(c), task.EmployeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify team membership"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "Task does not belong to your team"})
		return
	}

	set, ok := buildTaskUpdate(c, request)
	if !ok {
		return
	}
	result := db.GetCollection(db.TasksCollection).FindOneAndUpdate(c.Request.Context(),
		bson.M{"_id": taskID}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err := result.Decode(&task); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTeamTask removes a team member's task (supervisors only)
func DeleteTeamTask(c *gin.Context) {
	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return
	}

	var task models.Task
	if err := db.GetCollection(db.TasksCollection).FindOne(c.Request.Context(), bson.M{"_id": taskID}).Decode(&task); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	member, err := services.IsTeamMember(c.Request.Context(),
		middlewares.CurrentUserID(c), middlewares.CurrentRole(c), task.EmployeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify team membership"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "Task does not belong to your team"})
		return
	}

	if _, err := db.GetCollection(db.TasksCollection).DeleteOne(c.Request.Context(), bson.M{"_id": taskID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// canViewTask reports whether the caller owns, assigned, or supervises
// the task's owner
func canViewTask(c *gin.Context, task models.Task) bool {
	userID := middlewares.CurrentUserID(c)
	if task.EmployeeID == userID || task.AssignedByID == userID {
		return true
	}
	role := middlewares.CurrentRole(c)
	if role != models.RoleSupervisor && role != models.RoleHRManager {
		return false
	}
	member, err := services.IsTeamMember(c.Request.Context(), userID, role, task.EmployeeID)
	return err == nil && member
}

// buildTaskUpdate validates an UpdateTaskRequest into a $set document,
// writing the error response itself when validation fails
func buildTaskUpdate(c *gin.Context, request UpdateTaskRequest) (bson.M, bool) {
	set := bson.M{"updatedAt": time.Now()}
	if request.Title != nil {
		set["title"] = *request.Title
	}
	if request.Description != nil {
		set["description"] = *request.Description
	}
	if request.Status != nil {
		status := models.TaskStatus(*request.Status)
		if status != models.TaskPending && status != models.TaskCompleted {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be pending or completed"})
			return nil, false
		}
		set["status"] = status
	}
	if request.Priority != nil {
		priority := models.TaskPriority(*request.Priority)
		if priority != models.PriorityLow && priority != models.PriorityMedium && priority != models.PriorityHigh {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be low, medium or high"})
			return nil, false
		}
		set["priority"] = priority
	}
	if request.Duration != nil {
		if *request.Duration < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Duration cannot be negative"})
			return nil, false
		}
		set["duration"] = *request.Duration
	}
	if request.DueDate != nil {
		set["dueDate"] = *request.DueDate
	}
	return set, true
}

// DeleteTask removes one of the caller's tasks
func DeleteTask(c *gin.Context) {
	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return
	}

	filter := bson.M{"_id": taskID, "employeeId": middlewares.CurrentUserID(c)}
	result, err := db.GetCollection(db.TasksCollection).DeleteOne(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
