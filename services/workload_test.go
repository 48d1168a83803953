package services

import (
	"testing"
	"time"

	"stresshub/models"
)

func minutesTask(duration int) models.Task {
	return models.Task{
		Title:    "task",
		Status:   models.TaskCompleted,
		Priority: models.PriorityMedium,
		Duration: duration,
	}
}

func TestWorkloadEmptyDay(t *testing.T) {
	wb := ComputeWorkloadStress(nil, time.Now())

	if wb.TotalStress != 0 {
		t.Errorf("empty day: totalStress = %v, want 0", wb.TotalStress)
	}
	if wb.TotalHoursWorked != 0 || wb.TotalTasks != 0 {
		t.Errorf("empty day: hours = %v, tasks = %d, want zeros", wb.TotalHoursWorked, wb.TotalTasks)
	}
}

func TestWorkloadHourBands(t *testing.T) {
	cases := []struct {
		name     string
		minutes  int
		baseWant float64
	}{
		{"under FTE standard", 400, 0.0},
		{"exactly FTE standard region", 433, 0.0},
		{"light overtime", 450, 0.5},
		{"nine hours", 540, 0.5},
		{"ten hours", 600, 1.0},
		{"just under twelve", 719, 1.0},
		{"twelve hours", 720, 2.0},
	}

	now := time.Now()
	for _, tc := range cases {
		wb := ComputeWorkloadStress([]models.Task{minutesTask(tc.minutes)}, now)
		if wb.BaseScore != tc.baseWant {
			t.Errorf("%s (%d min): baseScore = %v, want %v", tc.name, tc.minutes, wb.BaseScore, tc.baseWant)
		}
	}
}

func TestWorkloadFactorCaps(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	// Ten pending high-priority overdue tasks: every factor must hit its cap.
	var tasks []models.Task
	for i := 0; i < 10; i++ {
		tasks = append(tasks, models.Task{
			Title:    "overloaded",
			Status:   models.TaskPending,
			Priority: models.PriorityHigh,
			DueDate:  &past,
		})
	}

	wb := ComputeWorkloadStress(tasks, now)
	if wb.PriorityStress != 0.5 {
		t.Errorf("priorityStress = %v, want cap 0.5", wb.PriorityStress)
	}
	if wb.OverdueStress != 0.5 {
		t.Errorf("overdueStress = %v, want cap 0.5", wb.OverdueStress)
	}
	if wb.PendingStress != 0.3 {
		t.Errorf("pendingStress = %v, want cap 0.3", wb.PendingStress)
	}
	if wb.TotalStress != 1.3 {
		t.Errorf("totalStress = %v, want 1.3 with no hours worked", wb.TotalStress)
	}
}

func TestWorkloadTotalCap(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	tasks := []models.Task{minutesTask(800)} // 13.3 hours, base 2.0
	for i := 0; i < 10; i++ {
		tasks = append(tasks, models.Task{
			Title:    "extra",
			Status:   models.TaskPending,
			Priority: models.PriorityHigh,
			DueDate:  &past,
		})
	}

	wb := ComputeWorkloadStress(tasks, now)
	if wb.TotalStress != 2.0 {
		t.Errorf("totalStress = %v, want cap 2.0", wb.TotalStress)
	}
}

func TestWorkloadOverdueRequiresPending(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tasks := []models.Task{
		{Title: "done late", Status: models.TaskCompleted, Priority: models.PriorityLow, DueDate: &past},
		{Title: "not due yet", Status: models.TaskPending, Priority: models.PriorityLow, DueDate: &future},
		{Title: "late", Status: models.TaskPending, Priority: models.PriorityLow, DueDate: &past},
	}

	wb := ComputeWorkloadStress(tasks, now)
	if wb.OverdueTasks != 1 {
		t.Errorf("overdueTasks = %d, want 1", wb.OverdueTasks)
	}
	if wb.PendingTasks != 2 {
		t.Errorf("pendingTasks = %d, want 2", wb.PendingTasks)
	}
	if wb.CompletedTasks != 1 {
		t.Errorf("completedTasks = %d, want 1", wb.CompletedTasks)
	}
}

func TestWorkloadFeedsScoringRange(t *testing.T) {
	// Whatever the task mix, the signal must stay inside the engine's
	// accepted [0,2] workload range.
	now := time.Now()
	past := now.Add(-time.Hour)

	var tasks []models.Task
	for i := 0; i < 50; i++ {
		tasks = append(tasks, models.Task{
			Title:    "pile",
			Status:   models.TaskPending,
			Priority: models.PriorityHigh,
			Duration: 60,
			DueDate:  &past,
		})
	}

	wb := ComputeWorkloadStress(tasks, now)
	if wb.TotalStress < 0 || wb.TotalStress > 2.0 {
		t.Errorf("totalStress = %v, outside [0,2]", wb.TotalStress)
	}
}
