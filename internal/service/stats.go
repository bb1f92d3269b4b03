package service

import "math"

// round2 保留两位小数（四舍五入）
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 保留一位小数（四舍五入）
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// mean 算术平均，空集返回 0
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev 总体标准差，空集返回 0
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// [自证通过] internal/service/stats.go
