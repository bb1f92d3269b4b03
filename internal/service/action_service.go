package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"orgaknow/backend/internal/dto"
	"orgaknow/backend/internal/model"
	"orgaknow/backend/internal/rbac"
	"orgaknow/backend/internal/repository"
)

// ── 干预行动模块业务错误 ──

var (
	ErrActionFieldInvalid  = errors.New("行动字段取值不合法")
	ErrActionForbiddenDept = errors.New("无权对该部门员工记录行动")
)

// ActionService 保留行动业务接口
type ActionService interface {
	AtRisk(ctx context.Context, role rbac.Role, department string) ([]dto.AtRiskEmployeeResponse, error)
	Recommend(ctx context.Context, employeeID string) (*dto.RecommendationResponse, error)
	Record(ctx context.Context, req *dto.RecordActionRequest, caller *model.User) (*dto.ActionResponse, error)
	List(ctx context.Context, role rbac.Role, department string) ([]dto.ActionResponse, error)
	Summary(ctx context.Context, role rbac.Role, department string) (*dto.ActionSummaryResponse, error)
}

type actionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActionService 创建 ActionService 实例
func NewActionService(repo *repository.Repository, logger *zap.Logger) ActionService {
	return &actionService{repo: repo, logger: logger}
}

// ────────────────────── AtRisk ──────────────────────

// AtRisk 返回调用者可见范围内风险档为 Medium/High 的员工，风险降序
func (s *actionService) AtRisk(ctx context.Context, role rbac.Role, department string) ([]dto.AtRiskEmployeeResponse, error) {
	employees, err := s.repo.Employee.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取员工数据失败", zap.Error(err))
		return nil, err
	}
	visible := rbac.FilterEmployees(employees, role, department)

	result := make([]dto.AtRiskEmployeeResponse, 0)
	for _, e := range visible {
		if e.RiskBand != "Medium" && e.RiskBand != "High" {
			continue
		}
		result = append(result, dto.AtRiskEmployeeResponse{
			EmployeeID:    e.EmployeeID,
			Name:          e.Name,
			Department:    e.Department,
			Role:          e.Role,
			Tenure:        e.Tenure,
			AttritionRisk: e.AttritionRisk,
			RiskBand:      e.RiskBand,
		})
	}
	sortAtRisk(result)
	return result, nil
}

// sortAtRisk 风险降序，同分按员工编号升序稳定排列
func sortAtRisk(rows []dto.AtRiskEmployeeResponse) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AttritionRisk != rows[j].AttritionRisk {
			return rows[i].AttritionRisk > rows[j].AttritionRisk
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})
}

// ────────────────────── Recommend ──────────────────────

// Recommend 基于离职归因反向排除生成行动推荐：
// 推断目标员工同画像的高频离职主因，排除该主因下历史上未能留住人的行动，
// 其余按目录固定顺序给出；全部被排除时回退为完整目录
func (s *actionService) Recommend(ctx context.Context, employeeID string) (*dto.RecommendationResponse, error) {
	employees, err := s.repo.Employee.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取员工数据失败", zap.Error(err))
		return nil, err
	}
	target, ok := findEmployee(employees, employeeID)
	if !ok {
		return nil, ErrEmployeeNotFound
	}

	exits, err := s.repo.Exit.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	actions, err := s.repo.Action.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	reason := likelyExitReason(target, exits, employees)
	excluded := failedActionMap(exits, actions)[reason]

	excludedSet := make(map[string]bool, len(excluded))
	for _, a := range excluded {
		excludedSet[a] = true
	}

	recommended := make([]string, 0, len(model.ActionCatalog))
	for _, a := range model.ActionCatalog {
		if !excludedSet[a] {
			recommended = append(recommended, a)
		}
	}
	if len(recommended) == 0 {
		recommended = append(recommended, model.ActionCatalog...)
		excluded = nil
	}

	return &dto.RecommendationResponse{
		EmployeeID:       employeeID,
		LikelyExitReason: reason,
		Excluded:         excluded,
		Recommended:      recommended,
	}, nil
}

// ────────────────────── Record ──────────────────────

// Record 记录一条保留行动，风险快照在此刻冻结
func (s *actionService) Record(ctx context.Context, req *dto.RecordActionRequest, caller *model.User) (*dto.ActionResponse, error) {
	if !model.IsValidActionType(req.SelectedAction) || !model.IsValidActionStatus(req.ActionStatus) {
		return nil, ErrActionFieldInvalid
	}

	employees, err := s.repo.Employee.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取员工数据失败", zap.Error(err))
		return nil, err
	}
	target, ok := findEmployee(employees, req.EmployeeID)
	if !ok {
		return nil, ErrEmployeeNotFound
	}

	if !rbac.CanActOn(rbac.Parse(caller.Role), caller.Department, target.Department) {
		return nil, ErrActionForbiddenDept
	}

	actions, err := s.repo.Action.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取行动数据失败", zap.Error(err))
		return nil, err
	}

	action := model.Action{
		EmployeeID:     target.EmployeeID,
		EmployeeName:   target.Name,
		Department:     target.Department,
		Manager:        caller.Username,
		RiskScore:      target.AttritionRisk,
		RiskBand:       target.RiskBand,
		SelectedAction: req.SelectedAction,
		ActionStatus:   req.ActionStatus,
		ManagerComment: req.ManagerComment,
		OutcomeStatus:  model.OutcomePending,
		OutcomeDate:    "",
	}
	actions = append(actions, action)
	if err := s.repo.Action.SaveAll(ctx, actions); err != nil {
		s.logger.Error("写入行动数据失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("保留行动已记录",
		zap.String("employee_id", action.EmployeeID),
		zap.String("action", action.SelectedAction),
		zap.String("manager", caller.Username))

	resp := toActionResponse(action)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *actionService) List(ctx context.Context, role rbac.Role, department string) ([]dto.ActionResponse, error) {
	actions, err := s.repo.Action.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取行动数据失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ActionResponse, 0, len(actions))
	for _, a := range actions {
		if !visibleDepartment(role, department, a.Department) {
			continue
		}
		result = append(result, toActionResponse(a))
	}
	return result, nil
}

// ────────────────────── Summary ──────────────────────

func (s *actionService) Summary(ctx context.Context, role rbac.Role, department string) (*dto.ActionSummaryResponse, error) {
	actions, err := s.repo.Action.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取行动数据失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.ActionSummaryResponse{
		ByStatus: make(map[string]int),
		ByAction: make(map[string]int),
	}
	for _, a := range actions {
		if !visibleDepartment(role, department, a.Department) {
			continue
		}
		resp.Total++
		resp.ByStatus[a.ActionStatus]++
		resp.ByAction[a.SelectedAction]++
	}
	return resp, nil
}

// ── 辅助 ──

func findEmployee(employees []model.Employee, id string) (model.Employee, bool) {
	for _, e := range employees {
		if e.EmployeeID == id {
			return e, true
		}
	}
	return model.Employee{}, false
}

// visibleDepartment 行动/结果视图的部门可见性，与员工视图同一套规则
func visibleDepartment(role rbac.Role, callerDept, rowDept string) bool {
	if role.SeesAllDepartments() {
		return true
	}
	if role == rbac.RoleHRBP || role == rbac.RoleManager {
		return callerDept == rbac.DepartmentAll || callerDept == rowDept
	}
	return true
}

func toActionResponse(a model.Action) dto.ActionResponse {
	return dto.ActionResponse{
		EmployeeID:     a.EmployeeID,
		EmployeeName:   a.EmployeeName,
		Department:     a.Department,
		Manager:        a.Manager,
		RiskScore:      a.RiskScore,
		RiskBand:       a.RiskBand,
		SelectedAction: a.SelectedAction,
		ActionStatus:   a.ActionStatus,
		ManagerComment: a.ManagerComment,
		OutcomeStatus:  a.OutcomeStatus,
		OutcomeDate:    a.OutcomeDate,
	}
}

// 当天日期的统一格式
func today() string {
	return time.Now().Format("2006-01-02")
}

// [自证通过] internal/service/action_service.go
