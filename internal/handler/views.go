package handler

import (
	"bytes"
	"net/http"
)

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	// 先渲染到缓冲区，模板出错时还能返回 500
	buf := &bytes.Buffer{}
	if err := h.views.ExecuteTemplate(buf, name, data); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	employees, err := h.scheduler.ListEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.render(w, r, "landing.html", map[string]any{
		"Employees": employees,
	})
}

func (h *Handler) EmployeeDetails(w http.ResponseWriter, r *http.Request) {
	employeeID := r.Context().Value(EmployeeIDCtx).(string)

	schedule, err := h.scheduler.GetEmployeeSchedule(employeeID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if !schedule.Exists {
		http.Error(w, "Employee not found", http.StatusNotFound)
		return
	}

	h.render(w, r, "details.html", map[string]any{
		"EmployeeID": employeeID,
		"Shifts":     schedule.Rows,
	})
}
