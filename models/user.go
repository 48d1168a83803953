package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role identifies what a user may see and do.
type Role string

const (
	RoleEmployee     Role = "employee"
	RoleSupervisor   Role = "supervisor"
	RoleHRManager    Role = "hr_manager"
	RolePsychiatrist Role = "psychiatrist"
)

// User defines a user entity
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email       string             `bson:"email" json:"email"`
	DisplayName string             `bson:"displayName" json:"displayName"`
	Role        Role               `bson:"role" json:"role"`
	TeamID      string             `bson:"teamId,omitempty" json:"teamId,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
