package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Availability is a weekly slot a consultant can be booked in.
// DayOfWeek runs 0=Monday through 6=Sunday; times are "HH:MM" in 24h form.
type Availability struct {
	DayOfWeek   int    `bson:"dayOfWeek" json:"dayOfWeek"`
	StartTime   string `bson:"startTime" json:"startTime"`
	EndTime     string `bson:"endTime" json:"endTime"`
	IsAvailable bool   `bson:"isAvailable" json:"isAvailable"`
}

// Consultant is a bookable mental-health professional. Availabilities
// are embedded in the consultant document.
type Consultant struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name               string             `bson:"name" json:"name"`
	Qualifications     string             `bson:"qualifications" json:"qualifications"`
	RegistrationNumber string             `bson:"registrationNumber" json:"registrationNumber"`
	Hospital           string             `bson:"hospital" json:"hospital"`
	Specialization     string             `bson:"specialization" json:"specialization"`
	Availabilities     []Availability     `bson:"availabilities" json:"availabilities"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}
