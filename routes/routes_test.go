package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"stresshub/middlewares"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	identified := router.Group("/")
	identified.Use(middlewares.Identity())
	{
		SetupStressRoutes(identified)
		SetupTaskRoutes(identified)
		SetupConsultantRoutes(identified)
		SetupBookingRoutes(identified)
		SetupDashboardRoutes(identified)
	}
	return router
}

func requestAs(t *testing.T, router *gin.Engine, method, path, role string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		req.Header.Set("X-User-Id", "64b0c8f2a1b2c3d4e5f60718")
		req.Header.Set("X-User-Email", "someone@example.com")
		req.Header.Set("X-User-Role", role)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestStressRoutesRejectPsychiatrists(t *testing.T) {
	router := newTestRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/stress/submit-assessment"},
		{http.MethodGet, "/stress/my-score"},
		{http.MethodGet, "/stress/my-history"},
		{http.MethodGet, "/stress/workload-details"},
		{http.MethodPut, "/stress/update-sharing"},
		{http.MethodGet, "/stress/team-scores"},
	}
	for _, p := range paths {
		recorder := requestAs(t, router, p.method, p.path, "psychiatrist")
		if recorder.Code != http.StatusForbidden {
			t.Errorf("%s %s as psychiatrist: got %d, want %d", p.method, p.path, recorder.Code, http.StatusForbidden)
		}
	}
}

func TestSupervisorTaskRoutesRejectEmployees(t *testing.T) {
	router := newTestRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/tasks/supervisor/assign"},
		{http.MethodGet, "/tasks/supervisor/team"},
		{http.MethodPut, "/tasks/supervisor/64b0c8f2a1b2c3d4e5f60718"},
		{http.MethodDelete, "/tasks/supervisor/64b0c8f2a1b2c3d4e5f60718"},
	}
	for _, p := range paths {
		recorder := requestAs(t, router, p.method, p.path, "employee")
		if recorder.Code != http.StatusForbidden {
			t.Errorf("%s %s as employee: got %d, want %d", p.method, p.path, recorder.Code, http.StatusForbidden)
		}
	}
}

func TestTeamMembersListingRejectsEmployees(t *testing.T) {
	router := newTestRouter()

	recorder := requestAs(t, router, http.MethodGet, "/tasks/team-members", "employee")
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("got %d, want %d", recorder.Code, http.StatusForbidden)
	}
}

func TestConsultantManagementRequiresHR(t *testing.T) {
	router := newTestRouter()

	for _, role := range []string{"employee", "supervisor", "psychiatrist"} {
		paths := []struct {
			method string
			path   string
		}{
			{http.MethodPost, "/consultants"},
			{http.MethodPut, "/consultants/64b0c8f2a1b2c3d4e5f60718"},
			{http.MethodDelete, "/consultants/64b0c8f2a1b2c3d4e5f60718"},
		}
		for _, p := range paths {
			recorder := requestAs(t, router, p.method, p.path, role)
			if recorder.Code != http.StatusForbidden {
				t.Errorf("%s %s as %s: got %d, want %d", p.method, p.path, role, recorder.Code, http.StatusForbidden)
			}
		}
	}
}

func TestBookingRoutesRoleGates(t *testing.T) {
	router := newTestRouter()

	cases := []struct {
		method string
		path   string
		role   string
	}{
		{http.MethodPost, "/bookings", "psychiatrist"},
		{http.MethodGet, "/bookings/my", "psychiatrist"},
		{http.MethodPost, "/bookings/for-employee", "employee"},
		{http.MethodGet, "/bookings/team", "employee"},
		{http.MethodPatch, "/bookings/64b0c8f2a1b2c3d4e5f60718/status", "employee"},
		{http.MethodPatch, "/bookings/64b0c8f2a1b2c3d4e5f60718/status", "supervisor"},
	}
	for _, tc := range cases {
		recorder := requestAs(t, router, tc.method, tc.path, tc.role)
		if recorder.Code != http.StatusForbidden {
			t.Errorf("%s %s as %s: got %d, want %d", tc.method, tc.path, tc.role, recorder.Code, http.StatusForbidden)
		}
	}
}

func TestPsychiatristDashboardRejectsOtherRoles(t *testing.T) {
	router := newTestRouter()

	for _, role := range []string{"employee", "supervisor", "hr_manager"} {
		recorder := requestAs(t, router, http.MethodGet, "/dashboard/psychiatrist", role)
		if recorder.Code != http.StatusForbidden {
			t.Errorf("as %s: got %d, want %d", role, recorder.Code, http.StatusForbidden)
		}
	}
}

func TestMissingIdentityHeadersRejected(t *testing.T) {
	router := newTestRouter()

	recorder := requestAs(t, router, http.MethodGet, "/stress/my-history", "")
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}
