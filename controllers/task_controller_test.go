package controllers

import (
	"net/http/httptest"
	"testing"

	"stresshub/models"

	"github.com/gin-gonic/gin"
)

func contextAs(userID string, role models.Role) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Set("userId", userID)
	c.Set("role", role)
	return c
}

func TestCanViewTaskOwnerAndAssigner(t *testing.T) {
	task := models.Task{EmployeeID: "emp-1", AssignedByID: "sup-1"}

	if !canViewTask(contextAs("emp-1", models.RoleEmployee), task) {
		t.Error("owner should view their own task")
	}
	if !canViewTask(contextAs("sup-1", models.RoleSupervisor), task) {
		t.Error("assigner should view the task they assigned")
	}
	if canViewTask(contextAs("emp-2", models.RoleEmployee), task) {
		t.Error("unrelated employee should not view the task")
	}
}

func TestBuildTaskUpdateValidation(t *testing.T) {
	bad := "blocked"
	c := contextAs("emp-1", models.RoleEmployee)
	if _, ok := buildTaskUpdate(c, UpdateTaskRequest{Status: &bad}); ok {
		t.Error("expected invalid status to be rejected")
	}

	negative := -5
	c = contextAs("emp-1", models.RoleEmployee)
	if _, ok := buildTaskUpdate(c, UpdateTaskRequest{Duration: &negative}); ok {
		t.Error("expected negative duration to be rejected")
	}

	title := "write report"
	done := "completed"
	c = contextAs("emp-1", models.RoleEmployee)
	set, ok := buildTaskUpdate(c, UpdateTaskRequest{Title: &title, Status: &done})
	if !ok {
		t.Fatal("expected a valid update to pass")
	}
	if set["title"] != "write report" {
		t.Errorf("title = %v, want write report", set["title"])
	}
	if set["status"] != models.TaskCompleted {
		t.Errorf("status = %v, want %v", set["status"], models.TaskCompleted)
	}
	if _, present := set["updatedAt"]; !present {
		t.Error("updatedAt should always be set")
	}
}
