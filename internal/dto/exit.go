package dto

// ── 离职情报模块 DTO ──

// CreateExitRequest 手工录入离职记录请求
type CreateExitRequest struct {
	EmployeeID          string `json:"employee_id"           binding:"required"`
	ExitDate            string `json:"exit_date"             binding:"required"` // "2026-03-15"
	ExitType            string `json:"exit_type"             binding:"required"`
	PrimaryExitReason   string `json:"primary_exit_reason"   binding:"required"`
	SecondaryExitReason string `json:"secondary_exit_reason"` // 留空取 None
	ActionHelped        string `json:"action_helped"`
	HRComment           string `json:"hr_comment"`
}

// SuggestMappingRequest 导入列名映射建议请求
type SuggestMappingRequest struct {
	Columns []string `json:"columns" binding:"required,min=1"`
}

// SuggestMappingResponse 列名映射建议响应
type SuggestMappingResponse struct {
	Mapping   map[string]string `json:"mapping"`   // 目标字段 -> 来源列名
	Unmatched []string          `json:"unmatched"` // 未找到候选的目标字段
}

// ImportExitsRequest 批量导入离职记录请求（随 multipart 文件一起提交）
type ImportExitsRequest struct {
	Mapping map[string]string `form:"mapping"` // JSON 编码的列名映射
}

// ExitImportResponse 离职导入结果响应
type ExitImportResponse struct {
	Imported   int      `json:"imported"`
	Dropped    int      `json:"dropped"` // EmployeeID 不在册被丢弃的行数
	DroppedIDs []string `json:"dropped_ids,omitempty"`
	Total      int      `json:"total"`
}

// ExitResponse 离职记录响应
type ExitResponse struct {
	EmployeeID          string `json:"employee_id"`
	ExitDate            string `json:"exit_date"`
	ExitType            string `json:"exit_type"`
	PrimaryExitReason   string `json:"primary_exit_reason"`
	SecondaryExitReason string `json:"secondary_exit_reason"`
	ActionTaken         string `json:"action_taken"`
	ActionHelped        string `json:"action_helped"`
	HRComment           string `json:"hr_comment"`
}

// EligibleExitResponse 可登记离职的员工响应
type EligibleExitResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
	LastAction   string `json:"last_action"`
	OutcomeDate  string `json:"outcome_date"`
}

// ExitInsightsResponse 离职归因分析响应
type ExitInsightsResponse struct {
	Total           int                 `json:"total"`
	ByPrimaryReason map[string]int      `json:"by_primary_reason"`
	ByType          map[string]int      `json:"by_type"`
	ByDepartment    map[string]int      `json:"by_department"`
	FailedActionMap map[string][]string `json:"failed_action_map"` // 主因 -> 高频失败行动 top-2
}

// [自证通过] internal/dto/exit.go
