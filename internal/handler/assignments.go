package handler

import (
	"net/http"
	"strings"
)

func (h *Handler) AssignShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID string `json:"employeeId" validate:"required"`
		ShiftID    string `json:"shiftId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	req.EmployeeID = strings.ToUpper(strings.TrimSpace(req.EmployeeID))
	req.ShiftID = strings.TrimSpace(req.ShiftID)
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := h.scheduler.AssignEmployeeToShift(req.EmployeeID, req.ShiftID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.metrics.IncAssignment(result.Message)

	// 校验失败是正常的业务结果，不算服务器错误
	if !result.OK {
		h.errorResponse(w, r, result.Message)
		return
	}

	h.successResponse(w, r, result.Message, result)
}
