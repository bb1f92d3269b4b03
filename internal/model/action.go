package model

// Action 保留行动记录 — 对应 attrition_actions.csv
// RiskScore/RiskBand 是行动时刻的风险快照（非实时值），创建后冻结；
// 只有 OutcomeStatus/OutcomeDate 可被结果回填操作原地修改，
// 同一员工多条记录时以插入序最后一条为准
type Action struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	Department     string  `json:"department"`
	Manager        string  `json:"manager"`
	RiskScore      float64 `json:"risk_score"` // 行动时刻的风险快照
	RiskBand       string  `json:"risk_band"`
	SelectedAction string  `json:"selected_action"`
	ActionStatus   string  `json:"action_status"`
	ManagerComment string  `json:"manager_comment"`
	OutcomeStatus  string  `json:"outcome_status"`
	OutcomeDate    string  `json:"outcome_date"`
}

// ActionCatalog 固定的 8 类保留行动，顺序稳定（推荐列表保持此序）
var ActionCatalog = []string{
	"Career Path Discussion",
	"Compensation Review",
	"Manager Coaching / 1:1",
	"Internal Role Movement",
	"Workload Rebalancing",
	"Training / Upskilling",
	"Engagement Survey Follow-up",
	"No Action – Monitor",
}

// 行动状态取值
const (
	ActionStatusPlanned    = "Planned"
	ActionStatusInProgress = "In Progress"
	ActionStatusCompleted  = "Completed"
)

// 结果状态取值
const (
	OutcomePending = "Pending"
	OutcomeStayed  = "Stayed"
	OutcomeLeft    = "Left"
)

// IsValidActionType 校验行动类型是否在目录中
func IsValidActionType(a string) bool { return contains(ActionCatalog, a) }

// IsValidActionStatus 校验行动状态取值
func IsValidActionStatus(s string) bool {
	return s == ActionStatusPlanned || s == ActionStatusInProgress || s == ActionStatusCompleted
}

// IsValidOutcomeStatus 校验结果状态取值
func IsValidOutcomeStatus(s string) bool {
	return s == OutcomePending || s == OutcomeStayed || s == OutcomeLeft
}

// [自证通过] internal/model/action.go
