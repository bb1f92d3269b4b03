package service

import (
	"context"
	"time"

	"orgaknow/backend/internal/model"
	"orgaknow/backend/internal/repository"
	"orgaknow/backend/internal/risk"
	pkgerrors "orgaknow/backend/pkg/errors"
)

// ── 内存版 Repository，供 Service 层单测使用 ──

type mockEmployeeRepo struct {
	rows []model.Employee
	err  error
}

func (m *mockEmployeeRepo) LoadAll(_ context.Context) ([]model.Employee, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Employee, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *mockEmployeeRepo) SaveAll(_ context.Context, employees []model.Employee) error {
	if m.err != nil {
		return m.err
	}
	m.rows = make([]model.Employee, len(employees))
	copy(m.rows, employees)
	return nil
}

type mockActionRepo struct {
	rows []model.Action
	err  error
}

func (m *mockActionRepo) LoadAll(_ context.Context) ([]model.Action, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Action, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *mockActionRepo) SaveAll(_ context.Context, actions []model.Action) error {
	if m.err != nil {
		return m.err
	}
	m.rows = make([]model.Action, len(actions))
	copy(m.rows, actions)
	return nil
}

type mockExitRepo struct {
	rows []model.Exit
	err  error
}

func (m *mockExitRepo) LoadAll(_ context.Context) ([]model.Exit, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Exit, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *mockExitRepo) SaveAll(_ context.Context, exits []model.Exit) error {
	if m.err != nil {
		return m.err
	}
	m.rows = make([]model.Exit, len(exits))
	copy(m.rows, exits)
	return nil
}

type mockWeightConfigRepo struct {
	weights *risk.Weights
	err     error
}

func (m *mockWeightConfigRepo) Load(_ context.Context) (risk.Weights, error) {
	if m.err != nil {
		return risk.Weights{}, m.err
	}
	if m.weights == nil {
		return risk.DefaultWeights(), nil
	}
	return *m.weights, nil
}

func (m *mockWeightConfigRepo) Save(_ context.Context, w risk.Weights) error {
	if m.err != nil {
		return m.err
	}
	m.weights = &w
	return nil
}

type mockUserRepo struct {
	users map[string]*model.User
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, pkgerrors.ErrNotFound
}

type auditEvent struct {
	username string
	reason   string
	login    bool
}

type mockAuditRepo struct {
	events []auditEvent
}

func (m *mockAuditRepo) AppendLogin(_ context.Context, username, _ string, _ time.Time) error {
	m.events = append(m.events, auditEvent{username: username, login: true})
	return nil
}

func (m *mockAuditRepo) MarkLogout(_ context.Context, username, reason string, _ time.Time) error {
	m.events = append(m.events, auditEvent{username: username, reason: reason})
	return nil
}

// newMockRepository 组合全部内存 Repo
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		Employee:     &mockEmployeeRepo{},
		Action:       &mockActionRepo{},
		Exit:         &mockExitRepo{},
		WeightConfig: &mockWeightConfigRepo{},
		User:         &mockUserRepo{users: make(map[string]*model.User)},
		Audit:        &mockAuditRepo{},
	}
}

// [自证通过] internal/service/mock_repos_test.go
