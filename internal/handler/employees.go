package handler

import (
	"net/http"
	"strings"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.scheduler.ListEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employees retrieved", employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name" validate:"max=100"`
		Phone string `json:"phone" validate:"max=32"`
	}

	// 姓名和电话原样保存，只限制长度
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee, err := h.scheduler.CreateEmployee(req.Name, req.Phone)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.metrics.IncEmployeeCreated()

	h.successResponse(w, r, "Employee added", employee)
}

func (h *Handler) GetEmployeeSchedule(w http.ResponseWriter, r *http.Request) {
	employeeID := r.Context().Value(EmployeeIDCtx).(string)

	schedule, err := h.scheduler.GetEmployeeSchedule(employeeID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if !schedule.Exists {
		h.writeJSON(w, r, http.StatusOK, Response{
			Success: false,
			Message: "Employee does not exist",
			Data:    schedule,
		})
		return
	}

	h.successResponse(w, r, "schedule retrieved", schedule)
}

func (h *Handler) GetEmployeeHours(w http.ResponseWriter, r *http.Request) {
	employeeID := r.Context().Value(EmployeeIDCtx).(string)
	date := strings.TrimSpace(r.URL.Query().Get("date"))

	if err := h.validate.Var(date, "required"); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hours, err := h.scheduler.GetHoursForEmployeeOnDate(employeeID, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "hours retrieved", map[string]any{
		"employeeId": employeeID,
		"date":       date,
		"hours":      hours,
	})
}
