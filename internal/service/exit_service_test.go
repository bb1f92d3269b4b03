package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"orgaknow/backend/internal/dto"
	"orgaknow/backend/internal/model"
	"orgaknow/backend/internal/rbac"
)

func TestExitService_Eligible(t *testing.T) {
	repo := newMockRepository()
	repo.Action.(*mockActionRepo).rows = []model.Action{
		{EmployeeID: "E001", EmployeeName: "A", Department: "IT", SelectedAction: "Compensation Review", OutcomeStatus: model.OutcomeLeft, OutcomeDate: "2026-07-01"},
		{EmployeeID: "E002", EmployeeName: "B", Department: "IT", SelectedAction: "Workload Rebalancing", OutcomeStatus: model.OutcomeStayed},
		{EmployeeID: "E003", EmployeeName: "C", Department: "IT", SelectedAction: "Training / Upskilling", OutcomeStatus: model.OutcomeLeft},
	}
	repo.Exit.(*mockExitRepo).rows = []model.Exit{
		{EmployeeID: "E003", PrimaryExitReason: "Compensation"}, // 已登记
	}
	svc := NewExitService(repo, zap.NewNop())

	rows, err := svc.Eligible(context.Background(), rbac.RoleCHRO, "All")
	if err != nil {
		t.Fatalf("Eligible 失败: %v", err)
	}
	if len(rows) != 1 || rows[0].EmployeeID != "E001" {
		t.Errorf("只有结果为 Left 且未登记的员工可选: %+v", rows)
	}
}

func validExitReq(id string) *dto.CreateExitRequest {
	return &dto.CreateExitRequest{
		EmployeeID:        id,
		ExitDate:          "2026-03-15",
		ExitType:          "Voluntary",
		PrimaryExitReason: "Compensation",
	}
}

func TestExitService_CreateDefaultsAndDerivation(t *testing.T) {
	repo := newMockRepository()
	seedEmployees(repo.Employee.(*mockEmployeeRepo), scored("E001", "IT", 3, 3, 3, 3, 3))
	repo.Action.(*mockActionRepo).rows = []model.Action{
		{EmployeeID: "E001", SelectedAction: "Compensation Review", OutcomeStatus: model.OutcomeLeft},
	}
	svc := NewExitService(repo, zap.NewNop())

	resp, err := svc.Create(context.Background(), validExitReq("E001"))
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if resp.SecondaryExitReason != "None" {
		t.Errorf("次要原因缺省应为 None: %q", resp.SecondaryExitReason)
	}
	if resp.ActionTaken != "Yes" {
		t.Errorf("有行动记录时 ActionTaken 应推导为 Yes: %q", resp.ActionTaken)
	}
	if resp.ActionHelped != "Not Applicable" {
		t.Errorf("行动效果缺省应为 Not Applicable: %q", resp.ActionHelped)
	}
}

func TestExitService_CreateNoActionDerivesNo(t *testing.T) {
	repo := newMockRepository()
	seedEmployees(repo.Employee.(*mockEmployeeRepo), scored("E001", "IT", 3, 3, 3, 3, 3))
	svc := NewExitService(repo, zap.NewNop())

	resp, err := svc.Create(context.Background(), validExitReq("E001"))
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if resp.ActionTaken != "No" {
		t.Errorf("无行动记录时 ActionTaken 应为 No: %q", resp.ActionTaken)
	}
}

func TestExitService_CreateGuards(t *testing.T) {
	repo := newMockRepository()
	seedEmployees(repo.Employee.(*mockEmployeeRepo), scored("E001", "IT", 3, 3, 3, 3, 3))
	svc := NewExitService(repo, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, validExitReq("E404")); !errors.Is(err, ErrExitUnknownEmployee) {
		t.Errorf("不在册员工应被拒绝，实际: %v", err)
	}

	bad := validExitReq("E001")
	bad.PrimaryExitReason = "Bad Coffee"
	if _, err := svc.Create(ctx, bad); !errors.Is(err, ErrExitFieldInvalid) {
		t.Errorf("目录外原因应被拒绝，实际: %v", err)
	}

	badDate := validExitReq("E001")
	badDate.ExitDate = "15/03/2026"
	if _, err := svc.Create(ctx, badDate); !errors.Is(err, ErrExitDateInvalid) {
		t.Errorf("不可解析日期应被拒绝，实际: %v", err)
	}
}

func TestExitService_CreateAllowsRepeatedExit(t *testing.T) {
	repo := newMockRepository()
	seedEmployees(repo.Employee.(*mockEmployeeRepo), scored("E001", "IT", 3, 3, 3, 3, 3))
	repo.Exit.(*mockExitRepo).rows = []model.Exit{
		{EmployeeID: "E001", ExitDate: "2024-01-10", PrimaryExitReason: "Compensation"},
	}
	svc := NewExitService(repo, zap.NewNop())

	// 一名员工允许多条离职记录（如返聘后再次离职）
	if _, err := svc.Create(context.Background(), validExitReq("E001")); err != nil {
		t.Fatalf("同一员工的再次离职应可登记: %v", err)
	}
	exits, _ := repo.Exit.LoadAll(context.Background())
	if len(exits) != 2 {
		t.Errorf("应存在2条离职记录，实际 %d", len(exits))
	}
}

func TestExitService_SuggestMapping(t *testing.T) {
	repo := newMockRepository()
	svc := NewExitService(repo, zap.NewNop())

	resp := svc.SuggestMapping(context.Background(), []string{
		"employee_id", "Exit Date", "exit type", "Primary Reason", "Notes",
	})
	if resp.Mapping["EmployeeID"] != "employee_id" {
		t.Errorf("下划线列名应精确匹配: %+v", resp.Mapping)
	}
	if resp.Mapping["ExitDate"] != "Exit Date" {
		t.Errorf("空格列名应精确匹配: %+v", resp.Mapping)
	}
	if resp.Mapping["ExitType"] != "exit type" {
		t.Errorf("大小写差异应精确匹配: %+v", resp.Mapping)
	}
	if resp.Mapping["PrimaryExitReason"] == "" {
		t.Errorf("近似列名应有模糊建议: %+v", resp.Mapping)
	}
}

const exitImportCSV = `emp,date,type,reason
E001,2026-03-15,Voluntary,Compensation
E404,2026-04-01,Voluntary,Career Growth
E002,2026-05-20,Involuntary,Role Mismatch
E002,2026-06-01,Voluntary,Compensation
`

var exitImportMapping = map[string]string{
	"EmployeeID":        "emp",
	"ExitDate":          "date",
	"ExitType":          "type",
	"PrimaryExitReason": "reason",
}

func TestExitService_ImportDropsOnlyUnknownEmployees(t *testing.T) {
	repo := newMockRepository()
	seedEmployees(repo.Employee.(*mockEmployeeRepo),
		scored("E001", "IT", 3, 3, 3, 3, 3),
		scored("E002", "Sales", 3, 3, 3, 3, 3),
	)
	svc := NewExitService(repo, zap.NewNop())

	resp, err := svc.Import(context.Background(), strings.NewReader(exitImportCSV), exitImportMapping)
	if err != nil {
		t.Fatalf("Import 失败: %v", err)
	}
	// 同一员工可有多条离职记录，E002 两行都应导入；仅 E404 不在册被丢弃
	if resp.Imported != 3 {
		t.Errorf("应导入3行，实际 %d", resp.Imported)
	}
	if resp.Dropped != 1 || len(resp.DroppedIDs) != 1 || resp.DroppedIDs[0] != "E404" {
		t.Errorf("只应丢弃不在册的 E404: dropped=%d ids=%v", resp.Dropped, resp.DroppedIDs)
	}

	exits, _ := repo.Exit.LoadAll(context.Background())
	for _, e := range exits {
		if e.SecondaryExitReason != "None" || e.ActionHelped != "Not Applicable" || e.HRComment != "Bulk Uploaded" {
			t.Errorf("未映射字段应取默认值: %+v", e)
		}
	}
}

func TestExitService_ImportKeepsRowsWithPriorExit(t *testing.T) {
	repo := newMockRepository()
	seedEmployees(repo.Employee.(*mockEmployeeRepo), scored("E001", "IT", 3, 3, 3, 3, 3))
	repo.Exit.(*mockExitRepo).rows = []model.Exit{
		{EmployeeID: "E001", ExitDate: "2024-01-10", PrimaryExitReason: "Compensation"},
	}
	svc := NewExitService(repo, zap.NewNop())

	csv := "emp,date,type,reason\nE001,2026-03-15,Voluntary,Career Growth\n"
	resp, err := svc.Import(context.Background(), strings.NewReader(csv), exitImportMapping)
	if err != nil {
		t.Fatalf("Import 失败: %v", err)
	}
	// 已有历史离职记录不构成丢弃理由
	if resp.Imported != 1 || resp.Dropped != 0 {
		t.Errorf("已有离职记录的在册员工行应导入: imported=%d dropped=%d ids=%v",
			resp.Imported, resp.Dropped, resp.DroppedIDs)
	}
	if resp.Total != 2 {
		t.Errorf("导入后应共2条记录，实际 %d", resp.Total)
	}
}

func TestExitService_ImportAbortsOnBadDate(t *testing.T) {
	repo := newMockRepository()
	seedEmployees(repo.Employee.(*mockEmployeeRepo),
		scored("E001", "IT", 3, 3, 3, 3, 3),
		scored("E002", "Sales", 3, 3, 3, 3, 3),
	)
	svc := NewExitService(repo, zap.NewNop())

	csv := "emp,date,type,reason\nE001,2026-03-15,Voluntary,Compensation\nE002,15/03/2026,Voluntary,Compensation\n"
	if _, err := svc.Import(context.Background(), strings.NewReader(csv), exitImportMapping); !errors.Is(err, ErrExitDateInvalid) {
		t.Fatalf("日期不可解析应中止导入，实际: %v", err)
	}
	// 中止时不得留下部分写入
	exits, _ := repo.Exit.LoadAll(context.Background())
	if len(exits) != 0 {
		t.Errorf("中止的导入不应写入任何行: %+v", exits)
	}
}

func TestExitService_ImportMissingMapping(t *testing.T) {
	repo := newMockRepository()
	svc := NewExitService(repo, zap.NewNop())

	mapping := map[string]string{"EmployeeID": "emp"}
	if _, err := svc.Import(context.Background(), strings.NewReader(exitImportCSV), mapping); !errors.Is(err, ErrExitMappingMissing) {
		t.Errorf("缺少必填映射应被拒绝，实际: %v", err)
	}
}

func TestExitService_Insights(t *testing.T) {
	repo := newMockRepository()
	seedEmployees(repo.Employee.(*mockEmployeeRepo),
		scored("E001", "IT", 3, 3, 3, 3, 3),
		scored("E002", "IT", 3, 3, 3, 3, 3),
		scored("E003", "Sales", 3, 3, 3, 3, 3),
	)
	repo.Action.(*mockActionRepo).rows = []model.Action{
		{EmployeeID: "E001", SelectedAction: "Compensation Review"},
		{EmployeeID: "E002", SelectedAction: "Compensation Review"},
		{EmployeeID: "E003", SelectedAction: "Manager Coaching / 1:1"},
	}
	repo.Exit.(*mockExitRepo).rows = []model.Exit{
		{EmployeeID: "E001", ExitType: "Voluntary", PrimaryExitReason: "Compensation", ActionTaken: "Yes"},
		{EmployeeID: "E002", ExitType: "Voluntary", PrimaryExitReason: "Compensation", ActionTaken: "Yes"},
		{EmployeeID: "E003", ExitType: "Involuntary", PrimaryExitReason: "Role Mismatch", ActionTaken: "Yes"},
	}
	svc := NewExitService(repo, zap.NewNop())

	resp, err := svc.Insights(context.Background(), rbac.RoleCHRO, "All")
	if err != nil {
		t.Fatalf("Insights 失败: %v", err)
	}
	if resp.Total != 3 || resp.ByPrimaryReason["Compensation"] != 2 {
		t.Errorf("归因分布不符: %+v", resp)
	}
	failed := resp.FailedActionMap["Compensation"]
	if len(failed) == 0 || failed[0] != "Compensation Review" {
		t.Errorf("失败行动映射不符: %v", failed)
	}
	if resp.ByDepartment["IT"] != 2 {
		t.Errorf("部门分布不符: %+v", resp.ByDepartment)
	}
}

// [自证通过] internal/service/exit_service_test.go
