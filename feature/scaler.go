package feature

import "fmt"

// MinMaxScaler 把特征缩放到 [0,1] 区间：x' = (x - min) / (max - min)。
//
// 统计量在 Fit（训练）时一次性捕获，Transform（推理）沿用同一组 min/max，
// 绝不在推理时重算。常量列（max == min）恒输出 0。
type MinMaxScaler struct {
	Min []float64
	Max []float64
}

// Fit 捕获每列的 min/max。
func (s *MinMaxScaler) Fit(matrix [][]float64) error {
	if len(matrix) == 0 {
		return fmt.Errorf("scaler: empty matrix")
	}
	cols := len(matrix[0])
	s.Min = make([]float64, cols)
	s.Max = make([]float64, cols)
	copy(s.Min, matrix[0])
	copy(s.Max, matrix[0])

	for _, row := range matrix[1:] {
		for j, v := range row {
			if v < s.Min[j] {
				s.Min[j] = v
			}
			if v > s.Max[j] {
				s.Max[j] = v
			}
		}
	}
	return nil
}

// Transform 用已捕获的统计量缩放矩阵（原矩阵不修改）。
// 训练集以外的值可能落在 [0,1] 之外，属预期行为。
func (s *MinMaxScaler) Transform(matrix [][]float64) ([][]float64, error) {
	if s.Min == nil {
		return nil, fmt.Errorf("scaler: not fitted")
	}
	out := make([][]float64, len(matrix))
	for i, row := range matrix {
		if len(row) != len(s.Min) {
			return nil, fmt.Errorf("scaler: row %d has %d columns, fitted on %d", i, len(row), len(s.Min))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			rng := s.Max[j] - s.Min[j]
			if rng > 0 {
				scaled[j] = (v - s.Min[j]) / rng
			} else {
				scaled[j] = 0
			}
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform 先 Fit 再 Transform。
func (s *MinMaxScaler) FitTransform(matrix [][]float64) ([][]float64, error) {
	if err := s.Fit(matrix); err != nil {
		return nil, err
	}
	return s.Transform(matrix)
}
