package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stresshub/scoring"
)

// StressScore stores the latest assessment result for an employee.
// One document per employee, upserted on each submission.
type StressScore struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	EmployeeID          string             `bson:"employeeId" json:"employeeId"`
	EmployeeName        string             `bson:"employeeName" json:"employeeName"`
	Score               float64            `bson:"score" json:"score"`
	Level               scoring.Level      `bson:"level" json:"level"`
	PSSScore            int                `bson:"pssScore" json:"pssScore"`
	NormalizedPSS       float64            `bson:"normalizedPss" json:"normalizedPss"`
	WorkloadStress      float64            `bson:"workloadStress" json:"workloadStress"`
	TotalHoursWorked    float64            `bson:"totalHoursWorked" json:"totalHoursWorked"`
	ShareWithSupervisor bool               `bson:"shareWithSupervisor" json:"shareWithSupervisor"`
	ShareWithHR         bool               `bson:"shareWithHr" json:"shareWithHr"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}
