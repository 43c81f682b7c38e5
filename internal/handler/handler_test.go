package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/repository"
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/scheduler"
)

func newTestHandler(t *testing.T) (*Handler, string) {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"employees.json": `[
			{"employeeId": "E001", "name": "Ali", "phone": "5551234"},
			{"employeeId": "E002", "name": "<b>Mona</b>", "phone": "5559876"}
		]`,
		"shifts.json": `[
			{"shiftId": "S001", "date": "2025-03-01", "startTime": "08:00", "endTime": "14:00"},
			{"shiftId": "S002", "date": "2025-03-01", "startTime": "15:00", "endTime": "18:00"},
			{"shiftId": "S003", "date": "2025-03-02", "startTime": "09:00", "endTime": "11:00"}
		]`,
		"assignments.json": `[{"employeeId": "E001", "shiftId": "S001"}]`,
		"config.json":      `{"maxDailyHours": 8}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	}

	cfg := &config.Config{}
	cfg.Storage.Driver = config.StorageDriverFile
	cfg.Storage.DataDir = dir
	cfg.Storage.EmployeesFile = "employees.json"
	cfg.Storage.ShiftsFile = "shifts.json"
	cfg.Storage.AssignmentsFile = "assignments.json"
	cfg.Storage.ConfigFile = "config.json"

	s := scheduler.New(repository.NewFileRepository(cfg), &scheduler.Parameters{EnforceDailyCap: true})
	h, err := NewHandler(cfg, s)
	require.NoError(t, err)
	h.RegisterRoutes()

	return h, dir
}

func do(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetAllEmployees(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(h, http.MethodGet, "/api/employees", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	assert.True(t, resp.Success)
	employees := resp.Data.([]any)
	require.Len(t, employees, 2)
	assert.Equal(t, "E001", employees[0].(map[string]any)["employeeId"])
}

func TestCreateEmployee(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(h, http.MethodPost, "/api/employees", `{"name": "  Sara ", "phone": "5550000"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, map[string]any{"employeeId": "E003", "name": "  Sara ", "phone": "5550000"}, resp.Data)

	// 空值和核心逻辑一样直接接受
	rec = do(h, http.MethodPost, "/api/employees", `{"name": "", "phone": ""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, map[string]any{"employeeId": "E004", "name": "", "phone": ""}, resp.Data)

	rec = do(h, http.MethodPost, "/api/employees", `{"name": "`+strings.Repeat("a", 101)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Message, "Name")

	rec = do(h, http.MethodPost, "/api/employees", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssignShift(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name    string
		body    string
		success bool
		message string
	}{
		{"unknown employee", `{"employeeId": "E404", "shiftId": "S001"}`, false, "Employee does not exist"},
		{"unknown shift", `{"employeeId": "E001", "shiftId": "S404"}`, false, "Shift does not exist"},
		{"duplicate", `{"employeeId": "E001", "shiftId": "S001"}`, false, "Employee already assigned to shift"},
		{"daily cap", `{"employeeId": "E001", "shiftId": "S002"}`, false, "Daily hour limit exceeded"},
		{"recorded with normalized id", `{"employeeId": " e001 ", "shiftId": "S003"}`, true, "Shift Recorded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, http.MethodPost, "/api/assignments", tt.body)
			require.Equal(t, http.StatusOK, rec.Code)

			resp := decode(t, rec)
			assert.Equal(t, tt.success, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
		})
	}

	rec := do(h, http.MethodPost, "/api/assignments", `{"employeeId": "E001"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEmployeeSchedule(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(h, http.MethodGet, "/api/employees/e001/schedule", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, map[string]any{
		"exists": true,
		"rows": []any{
			map[string]any{"date": "2025-03-01", "startTime": "08:00", "endTime": "14:00"},
		},
	}, resp.Data)

	rec = do(h, http.MethodGet, "/api/employees/E404/schedule", "")
	resp = decode(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, map[string]any{"exists": false, "rows": []any{}}, resp.Data)
}

func TestGetEmployeeHours(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(h, http.MethodGet, "/api/employees/E001/hours?date=2025-03-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, 6.0, resp.Data.(map[string]any)["hours"])

	rec = do(h, http.MethodGet, "/api/employees/E001/hours", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStorageFailureIsInternalError(t *testing.T) {
	h, dir := newTestHandler(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "employees.json"), []byte("{broken"), 0600))

	rec := do(h, http.MethodGet, "/api/employees", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "internal server error", resp.Message)
	assert.NotContains(t, rec.Body.String(), "employees.json")
}

func TestLandingPage(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, `href="/employee/E001"`)
	assert.Contains(t, body, "5559876")
	assert.Contains(t, body, "&lt;b&gt;Mona&lt;/b&gt;")
}

func TestEmployeeDetailsPage(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(h, http.MethodGet, "/employee/e001", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Schedule for E001")
	assert.Contains(t, rec.Body.String(), "<td>2025-03-01</td><td>08:00</td><td>14:00</td>")

	rec = do(h, http.MethodGet, "/employee/E002", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No shifts assigned.")

	rec = do(h, http.MethodGet, "/employee/E404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Employee not found")
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	do(h, http.MethodPost, "/api/assignments", `{"employeeId": "E001", "shiftId": "S003"}`)
	do(h, http.MethodGet, "/api/employees/E001/schedule", "")

	rec := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `shift_roster_assignments_total{result="Shift Recorded"} 1`)
	assert.Contains(t, body, `route="/api/employees/{id}/schedule"`)
}
