package feature

import "testing"

func TestMinMaxScaler_FitTransform(t *testing.T) {
	X := [][]float64{
		{0, 10, 5},
		{5, 20, 5},
		{10, 30, 5},
	}
	s := &MinMaxScaler{}
	got, err := s.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	want := [][]float64{
		{0, 0, 0},
		{0.5, 0.5, 0},
		{1, 1, 0},
	}
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("got[%d][%d] = %v, want %v", i, j, got[i][j], want[i][j])
			}
		}
	}

	// 原矩阵不被修改
	if X[1][0] != 5 {
		t.Error("Transform should not mutate the input matrix")
	}
}

// 推理必须沿用训练时捕获的统计量，绝不在推理矩阵上重算。
func TestMinMaxScaler_TransformReusesFittedStats(t *testing.T) {
	s := &MinMaxScaler{}
	if err := s.Fit([][]float64{{0}, {10}}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	got, err := s.Transform([][]float64{{5}, {20}})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got[0][0] != 0.5 {
		t.Errorf("got %v, want 0.5", got[0][0])
	}
	// 训练区间之外的值允许超出 [0,1]
	if got[1][0] != 2 {
		t.Errorf("got %v, want 2", got[1][0])
	}
}

func TestMinMaxScaler_Errors(t *testing.T) {
	s := &MinMaxScaler{}
	if _, err := s.Transform([][]float64{{1}}); err == nil {
		t.Error("Transform before Fit should fail")
	}
	if err := s.Fit(nil); err == nil {
		t.Error("Fit on empty matrix should fail")
	}
	if err := s.Fit([][]float64{{1, 2}}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := s.Transform([][]float64{{1}}); err == nil {
		t.Error("Transform with mismatched width should fail")
	}
}
