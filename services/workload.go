package services

import (
	"time"

	"stresshub/models"
)

// FTEStandardHours is the full-time-equivalent standard for a single day.
const FTEStandardHours = 7.22

// Factor caps keep any single signal from dominating the workload score.
const (
	highPriorityFactor = 0.1
	highPriorityCap    = 0.5
	overdueFactor      = 0.2
	overdueCap         = 0.5
	pendingFactor      = 0.05
	pendingCap         = 0.3
	maxWorkloadStress  = 2.0
)

// WorkloadBreakdown details how the workload stress signal was built.
// TotalStress is the [0,2] figure fed to the scoring engine.
type WorkloadBreakdown struct {
	TotalTasks        int     `json:"totalTasks"`
	HighPriorityTasks int     `json:"highPriorityTasks"`
	OverdueTasks      int     `json:"overdueTasks"`
	PendingTasks      int     `json:"pendingTasks"`
	CompletedTasks    int     `json:"completedTasks"`
	TotalHoursWorked  float64 `json:"totalHoursWorked"`
	FTEStandard       float64 `json:"fteStandard"`
	BaseScore         float64 `json:"baseScore"`
	PriorityStress    float64 `json:"priorityStress"`
	OverdueStress     float64 `json:"overdueStress"`
	PendingStress     float64 `json:"pendingStress"`
	TotalStress       float64 `json:"totalStress"`
}

// ComputeWorkloadStress derives the workload stress signal from a day's
// tasks. Callers pass the tasks already scoped to the trailing 24 hours;
// now is only used to decide which pending tasks are overdue.
func ComputeWorkloadStress(tasks []models.Task, now time.Time) WorkloadBreakdown {
	wb := WorkloadBreakdown{
		TotalTasks:  len(tasks),
		FTEStandard: FTEStandardHours,
	}

	for _, task := range tasks {
		wb.TotalHoursWorked += float64(task.Duration) / 60

		if task.Priority == models.PriorityHigh {
			wb.HighPriorityTasks++
		}
		if task.Status == models.TaskPending {
			wb.PendingTasks++
			if task.DueDate != nil && task.DueDate.Before(now) {
				wb.OverdueTasks++
			}
		}
	}
	wb.CompletedTasks = wb.TotalTasks - wb.PendingTasks

	// Hours banded against the FTE standard.
	switch {
	case wb.TotalHoursWorked <= FTEStandardHours:
		wb.BaseScore = 0.0
	case wb.TotalHoursWorked <= 9.0:
		wb.BaseScore = 0.5
	case wb.TotalHoursWorked < 12.0:
		wb.BaseScore = 1.0
	default:
		wb.BaseScore = 2.0
	}

	wb.PriorityStress = capped(float64(wb.HighPriorityTasks)*highPriorityFactor, highPriorityCap)
	wb.OverdueStress = capped(float64(wb.OverdueTasks)*overdueFactor, overdueCap)
	wb.PendingStress = capped(float64(wb.PendingTasks)*pendingFactor, pendingCap)

	wb.TotalStress = capped(wb.BaseScore+wb.PriorityStress+wb.OverdueStress+wb.PendingStress, maxWorkloadStress)
	return wb
}

func capped(value, limit float64) float64 {
	if value > limit {
		return limit
	}
	return value
}
