package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// TaskPriority ranks how urgent a task is.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task is a unit of tracked work. Duration is in minutes and feeds the
// hours-worked side of the workload stress calculation.
type Task struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Status       TaskStatus         `bson:"status" json:"status"`
	Priority     TaskPriority       `bson:"priority" json:"priority"`
	Duration     int                `bson:"duration" json:"duration"`
	DueDate      *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	EmployeeID   string             `bson:"employeeId" json:"employeeId"`
	AssignedByID string             `bson:"assignedById,omitempty" json:"assignedById,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
