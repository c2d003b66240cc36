package model

import (
	"math"
	"sort"
)

// 离线评估指标：训练后对训练集整体回测，用于观测模型拟合质量。
// 这些指标只进日志，不参与推荐决策。

// MAE 平均绝对误差。
func MAE(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}
	sum := 0.0
	for i := range yTrue {
		sum += math.Abs(yTrue[i] - yPred[i])
	}
	return sum / float64(len(yTrue))
}

// RMSE 均方根误差。
func RMSE(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}
	sum := 0.0
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(yTrue)))
}

// R2 决定系数。
func R2(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}
	mean := 0.0
	for _, v := range yTrue {
		mean += v
	}
	mean /= float64(len(yTrue))

	var ssRes, ssTot float64
	for i := range yTrue {
		d := yTrue[i] - yPred[i]
		ssRes += d * d
		t := yTrue[i] - mean
		ssTot += t * t
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

// SpearmanRho 等级相关系数（并列取平均秩）。
func SpearmanRho(yTrue, yPred []float64) float64 {
	if len(yTrue) < 2 || len(yTrue) != len(yPred) {
		return 0
	}
	return pearson(ranks(yTrue), ranks(yPred))
}

// TopNAccuracy 计算真实前 N 与预测前 N 的重叠比例。
func TopNAccuracy(yTrue, yPred []float64, n int) float64 {
	if n <= 0 || len(yTrue) != len(yPred) || len(yTrue) == 0 {
		return 0
	}
	if n > len(yTrue) {
		n = len(yTrue)
	}
	trueTop := topIndices(yTrue, n)
	predTop := topIndices(yPred, n)
	hit := 0
	for i := range trueTop {
		if predTop[i] {
			hit++
		}
	}
	return float64(hit) / float64(n)
}

func topIndices(y []float64, n int) map[int]bool {
	idx := make([]int, len(y))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return y[idx[a]] > y[idx[b]] })
	top := make(map[int]bool, n)
	for _, i := range idx[:n] {
		top[i] = true
	}
	return top
}

func ranks(y []float64) []float64 {
	idx := make([]int, len(y))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return y[idx[a]] < y[idx[b]] })

	out := make([]float64, len(y))
	for k := 0; k < len(idx); {
		j := k
		for j+1 < len(idx) && y[idx[j+1]] == y[idx[k]] {
			j++
		}
		// 并列区间 [k, j] 取平均秩（秩从 1 开始）
		avg := float64(k+j)/2 + 1
		for m := k; m <= j; m++ {
			out[idx[m]] = avg
		}
		k = j + 1
	}
	return out
}

func pearson(x, y []float64) float64 {
	n := float64(len(x))
	var sx, sy float64
	for i := range x {
		sx += x[i]
		sy += y[i]
	}
	mx, my := sx/n, sy/n

	var cov, vx, vy float64
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0
	}
	return cov / math.Sqrt(vx*vy)
}
