package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus is the lifecycle state of a consultation booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking is a consultation session reserved with a consultant.
// BookedByID differs from EmployeeID when a supervisor or HR manager
// books on the employee's behalf.
type Booking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ConsultantID    primitive.ObjectID `bson:"consultantId" json:"consultantId"`
	ConsultantName  string             `bson:"consultantName" json:"consultantName"`
	EmployeeID      string             `bson:"employeeId" json:"employeeId"`
	EmployeeName    string             `bson:"employeeName" json:"employeeName"`
	BookedByID      string             `bson:"bookedById" json:"bookedById"`
	BookedByName    string             `bson:"bookedByName" json:"bookedByName"`
	BookingDate     time.Time          `bson:"bookingDate" json:"bookingDate"`
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"`
	Status          BookingStatus      `bson:"status" json:"status"`
	StatusReason    string             `bson:"statusReason,omitempty" json:"statusReason,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
