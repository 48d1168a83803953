package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"stresshub/models"

	"github.com/gin-gonic/gin"
)

func identityRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{Identity()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": CurrentUserID(c), "role": CurrentRole(c)})
	})
	router.GET("/probe", handlers...)
	return router
}

func TestIdentityRejectsMissingHeaders(t *testing.T) {
	router := identityRouter()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/probe", nil)
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("missing headers: status = %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}

func TestIdentityRejectsUnknownRole(t *testing.T) {
	router := identityRouter()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/probe", nil)
	request.Header.Set("X-User-Id", "abc123")
	request.Header.Set("X-User-Email", "a@b.c")
	request.Header.Set("X-User-Role", "intruder")
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("unknown role: status = %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}

func TestIdentityAcceptsValidHeaders(t *testing.T) {
	router := identityRouter()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/probe", nil)
	request.Header.Set("X-User-Id", "abc123")
	request.Header.Set("X-User-Email", "a@b.c")
	request.Header.Set("X-User-Role", string(models.RoleEmployee))
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("valid headers: status = %d, want %d", recorder.Code, http.StatusOK)
	}
}

func TestRequireRoles(t *testing.T) {
	router := identityRouter(RequireRoles(models.RoleSupervisor, models.RoleHRManager))

	cases := []struct {
		role models.Role
		want int
	}{
		{models.RoleSupervisor, http.StatusOK},
		{models.RoleHRManager, http.StatusOK},
		{models.RoleEmployee, http.StatusForbidden},
		{models.RolePsychiatrist, http.StatusForbidden},
	}

	for _, tc := range cases {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/probe", nil)
		request.Header.Set("X-User-Id", "abc123")
		request.Header.Set("X-User-Email", "a@b.c")
		request.Header.Set("X-User-Role", string(tc.role))
		router.ServeHTTP(recorder, request)

		if recorder.Code != tc.want {
			t.Errorf("role %s: status = %d, want %d", tc.role, recorder.Code, tc.want)
		}
	}
}
