package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/repository/memory"
	"github.com/spec-kit/employee-service/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	store := memory.NewStore()
	revocations := auth.NewMemoryRevocationStore()
	metrics := observability.NewMetrics()

	authService, err := service.NewAuthService(config.AuthConfig{
		JWTSecret:             "router-test-secret",
		Issuer:                "test",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}, service.AuthDependencies{Principals: store.Repositories().Principals, Revocations: revocations}, logger)
	require.NoError(t, err)

	users, err := config.ParseBootstrapUsers("john:test123:USER,mary:test123:USER|MANAGER,susan:test123:USER|MANAGER|ADMIN")
	require.NoError(t, err)
	_, err = authService.EnsurePrincipals(context.Background(), users)
	require.NoError(t, err)

	app := NewApp("Employee Management API")
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("Employee Management API", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(authService, metrics),
		Departments:    handlers.NewDepartmentsHandler(service.NewDepartmentService(store, nil, logger)),
		Employees:      handlers.NewEmployeesHandler(service.NewEmployeeService(store, nil, logger)),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), revocations, auth.DefaultAccessRules()),
		Metrics:        metrics,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func login(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username, "password": "test123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, body []byte) errorBody {
	t.Helper()
	var out errorBody
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestPublicEndpoints(t *testing.T) {
	app := newTestApp(t)

	resp, body := call(t, app, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Employee Management API is running"}`, string(body))

	resp, body = call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"UP"`)

	resp, _ = call(t, app, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "employee_http_requests_total")
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)

	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "john", "password": "test123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ok map[string]any
	require.NoError(t, json.Unmarshal(body, &ok))
	assert.Equal(t, "john", ok["username"])
	assert.Equal(t, "Login successful", ok["message"])
	assert.NotEmpty(t, ok["token"])
	assert.NotEmpty(t, ok["expiresAt"])

	for _, creds := range []map[string]string{
		{"username": "john", "password": "wrong"},
		{"username": "nobody", "password": "test123"},
	} {
		resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.JSONEq(t, `{"error":{"code":"UNAUTHORIZED","message":"invalid credentials"}}`, string(body))
	}

	resp, body = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "john"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error":{"code":"UNAUTHORIZED","message":"invalid credentials"}}`, string(body))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	raw, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, raw.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	resp, _ := call(t, app, http.MethodGet, "/api/departments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/departments", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/employees", login(t, app, "john"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDepartmentLifecycle(t *testing.T) {
	app := newTestApp(t)
	user := login(t, app, "john")
	manager := login(t, app, "mary")
	admin := login(t, app, "susan")

	resp, _ := call(t, app, http.MethodPost, "/api/departments", user, map[string]string{"name": "Engineering"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := call(t, app, http.MethodPost, "/api/departments", manager, map[string]string{"name": "Engineering"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "Engineering", created.Name)

	resp, body = call(t, app, http.MethodPost, "/api/departments", manager, map[string]string{"name": "Engineering"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_VALUE", decodeError(t, body).Error.Code)

	resp, body = call(t, app, http.MethodGet, "/api/departments", user, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, strings.Count(string(body), `"name":"Engineering"`))

	resp, body = call(t, app, http.MethodGet, "/api/departments/name/Engineering", user, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), fmt.Sprintf(`"id":%d`, created.ID))

	resp, body = call(t, app, http.MethodPut, fmt.Sprintf("/api/departments/%d", created.ID), manager, map[string]string{"name": "R&D"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"name":"R&D"}`, created.ID), string(body))

	path := fmt.Sprintf("/api/departments/%d", created.ID)
	resp, _ = call(t, app, http.MethodDelete, path, manager, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = call(t, app, http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, fmt.Sprintf("/api/departments/id/%d", created.ID), user, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, body).Error.Code)

	resp, _ = call(t, app, http.MethodGet, "/api/departments/id/abc", user, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthorizationIgnoresPathCase(t *testing.T) {
	app := newTestApp(t)
	user := login(t, app, "john")
	manager := login(t, app, "mary")
	admin := login(t, app, "susan")

	resp, body := call(t, app, http.MethodPost, "/api/departments", manager, map[string]string{"name": "HR"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var dept struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &dept))

	resp, _ = call(t, app, http.MethodDelete, fmt.Sprintf("/API/Departments/%d", dept.ID), user, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/Api/Employees", user, map[string]string{
		"firstName": "A", "lastName": "B", "email": "a@test.com", "departmentName": "HR",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, fmt.Sprintf("/api/departments/id/%d", dept.ID), admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDepartmentListRejectsHugePage(t *testing.T) {
	app := newTestApp(t)
	resp, body := call(t, app, http.MethodGet, "/api/departments?page=922337203685477581&size=10", login(t, app, "john"), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", decodeError(t, body).Error.Code)
}

func TestDeleteDepartmentWithEmployeesConflicts(t *testing.T) {
	app := newTestApp(t)
	manager := login(t, app, "mary")
	admin := login(t, app, "susan")

	resp, body := call(t, app, http.MethodPost, "/api/departments", manager, map[string]string{"name": "HR"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var dept struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &dept))

	resp, body = call(t, app, http.MethodPost, "/api/employees", manager, map[string]string{
		"firstName": "John", "lastName": "Doe", "email": "john@test.com", "departmentName": "HR",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = call(t, app, http.MethodDelete, fmt.Sprintf("/api/departments/%d", dept.ID), admin, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeError(t, body).Error.Code)
}

func TestEmployeeLifecycle(t *testing.T) {
	app := newTestApp(t)
	user := login(t, app, "john")
	manager := login(t, app, "mary")
	admin := login(t, app, "susan")

	resp, _ := call(t, app, http.MethodPost, "/api/departments", manager, map[string]string{"name": "HR"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := call(t, app, http.MethodPost, "/api/employees", manager, map[string]string{
		"firstName": "John", "lastName": "Doe", "email": "not-an-email", "departmentName": "HR",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email", decodeError(t, body).Error.Details["email"])

	resp, body = call(t, app, http.MethodPost, "/api/employees", manager, map[string]string{
		"firstName": "John", "lastName": "Doe", "email": "john@test.com", "departmentName": "Ghost",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INVALID_REFERENCE", decodeError(t, body).Error.Code)

	resp, body = call(t, app, http.MethodPost, "/api/employees", manager, map[string]string{
		"firstName": "John", "lastName": "Doe", "email": "john@test.com", "departmentName": "HR",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var emp struct {
		ID         int64 `json:"id"`
		Department struct {
			Name string `json:"name"`
		} `json:"department"`
	}
	require.NoError(t, json.Unmarshal(body, &emp))
	assert.Equal(t, "HR", emp.Department.Name)

	resp, _ = call(t, app, http.MethodGet, "/api/employees/email/john@test.com", user, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	path := fmt.Sprintf("/api/employees/%d", emp.ID)
	resp, body = call(t, app, http.MethodPut, path, manager, map[string]string{
		"firstName": "Johnny", "lastName": "Doe", "email": "johnny@test.com", "departmentName": "HR",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"firstName":"Johnny"`)

	resp, _ = call(t, app, http.MethodDelete, path, user, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = call(t, app, http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, fmt.Sprintf(`{"message":"Deleted employee id - %d"}`, emp.ID), string(body))

	resp, _ = call(t, app, http.MethodGet, path, admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEmployeeListPagination(t *testing.T) {
	app := newTestApp(t)
	manager := login(t, app, "mary")

	resp, _ := call(t, app, http.MethodPost, "/api/departments", manager, map[string]string{"name": "HR"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	for i := range 12 {
		resp, body := call(t, app, http.MethodPost, "/api/employees", manager, map[string]string{
			"firstName": fmt.Sprintf("First%02d", i), "lastName": "Same",
			"email": fmt.Sprintf("e%02d@test.com", i), "departmentName": "HR",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	}

	var page struct {
		Content []struct {
			ID int64 `json:"id"`
		} `json:"content"`
		Number           int   `json:"number"`
		Size             int   `json:"size"`
		TotalElements    int64 `json:"totalElements"`
		TotalPages       int   `json:"totalPages"`
		First            bool  `json:"first"`
		Last             bool  `json:"last"`
		NumberOfElements int   `json:"numberOfElements"`
	}

	resp, body := call(t, app, http.MethodGet, "/api/employees?page=0&size=10&sort=lastName,desc", manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &page))
	require.Len(t, page.Content, 10)
	assert.Equal(t, int64(12), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.First)
	assert.False(t, page.Last)
	for i := 1; i < len(page.Content); i++ {
		assert.Greater(t, page.Content[i-1].ID, page.Content[i].ID)
	}

	resp, body = call(t, app, http.MethodGet, "/api/employees?page=0&size=10&sort=lastName,desc", manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var again struct {
		Content []struct {
			ID int64 `json:"id"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(body, &again))
	assert.Equal(t, page.Content, again.Content)

	resp, body = call(t, app, http.MethodGet, "/api/employees?sort=salary,asc", manager, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", decodeError(t, body).Error.Code)

	resp, _ = call(t, app, http.MethodGet, "/api/employees?size=500", manager, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "john")

	resp, _ := call(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := call(t, app, http.MethodGet, "/api/departments", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, body).Error.Code)

	resp, _ = call(t, app, http.MethodGet, "/api/departments", login(t, app, "john"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)
	resp, body := call(t, app, http.MethodGet, "/api/unknown", login(t, app, "john"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, body).Error.Code)
}
