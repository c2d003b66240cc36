package model

import (
	"fmt"
	"sort"
)

// GradientBoostedRegressor 实现梯度提升回归树 (GBDT / GBRT)。
//
// 预测原理：
// 1. 初始预测为训练标签均值
// 2. 逐棵拟合残差的回归树（平方损失下残差即负梯度）
// 3. 最终输出 = 初始值 + 学习率 * sum(树的输出)
//
// 工程特征：
//   - 实时性：好（本地训练 + 本地推理，目录规模数据毫秒级）
//   - 确定性：输入相同则输出逐位相同（特征按列序遍历，分裂增益持平取先者）
//   - 可解释性：中等（树结构可追溯分裂路径）
//
// 使用场景：
//   - 在启发式标签上做平滑：结构相似的候选获得相近的预测分
//   - 请求级一次性拟合（见 Regressor 约定），不做增量/在线学习
type GradientBoostedRegressor struct {
	// NEstimators 树的数量
	NEstimators int
	// LearningRate 学习率（shrinkage）
	LearningRate float64
	// MaxDepth 单棵树的最大深度
	MaxDepth int
	// MinSamplesSplit 继续分裂所需的最小样本数
	MinSamplesSplit int
	// MinSamplesLeaf 叶子节点的最小样本数
	MinSamplesLeaf int

	trees []*treeNode
	bias  float64
	cols  int
}

// NewGradientBoostedRegressor 创建带默认超参的 GBDT 回归器。
// 默认值与常见实现保持一致：100 棵树、学习率 0.1、深度 3。
func NewGradientBoostedRegressor() *GradientBoostedRegressor {
	return &GradientBoostedRegressor{
		NEstimators:     100,
		LearningRate:    0.1,
		MaxDepth:        3,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
}

func (g *GradientBoostedRegressor) Name() string { return "gbdt" }

// Fit 在 (X, y) 上拟合模型。重复调用会丢弃旧状态重新拟合。
func (g *GradientBoostedRegressor) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return fmt.Errorf("gbdt: empty training set")
	}
	if len(X) != len(y) {
		return fmt.Errorf("gbdt: %d rows but %d labels", len(X), len(y))
	}
	g.cols = len(X[0])
	for i, row := range X {
		if len(row) != g.cols {
			return fmt.Errorf("gbdt: row %d has %d columns, expected %d", i, len(row), g.cols)
		}
	}

	sum := 0.0
	for _, v := range y {
		sum += v
	}
	g.bias = sum / float64(len(y))
	g.trees = make([]*treeNode, 0, g.NEstimators)

	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = g.bias
	}
	residual := make([]float64, len(y))
	idx := make([]int, len(y))
	for i := range idx {
		idx[i] = i
	}

	for m := 0; m < g.NEstimators; m++ {
		for i := range y {
			residual[i] = y[i] - pred[i]
		}
		tree := g.buildTree(X, residual, idx, 0)
		g.trees = append(g.trees, tree)
		for i, row := range X {
			pred[i] += g.LearningRate * tree.predict(row)
		}
	}
	return nil
}

// PredictRow 输出单行特征的预测值。未拟合时返回 0。
func (g *GradientBoostedRegressor) PredictRow(x []float64) float64 {
	score := g.bias
	for _, t := range g.trees {
		score += g.LearningRate * t.predict(x)
	}
	return score
}

// Predict 输出整个矩阵的预测值。
func (g *GradientBoostedRegressor) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		out[i] = g.PredictRow(row)
	}
	return out
}

// treeNode 是回归树节点：内部节点带分裂条件，叶子带输出值。
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	leaf      bool
}

func (t *treeNode) predict(x []float64) float64 {
	node := t
	for !node.leaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

// buildTree 以方差缩减贪心生长回归树。
// 特征按列序遍历、分裂点取相邻不同取值的中点；增益持平保留先出现的分裂，保证确定性。
func (g *GradientBoostedRegressor) buildTree(X [][]float64, r []float64, idx []int, depth int) *treeNode {
	if depth >= g.MaxDepth || len(idx) < g.MinSamplesSplit {
		return leafNode(r, idx)
	}

	var (
		total   float64
		found   bool
		bestCol int
		bestThr float64
		bestSSE float64
	)
	for _, i := range idx {
		total += r[i]
	}
	// 不分裂时的基准：整体均值的平方和贡献
	baseline := total * total / float64(len(idx))
	bestSSE = baseline

	sorted := make([]int, len(idx))
	for col := 0; col < g.cols; col++ {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, b int) bool {
			return X[sorted[a]][col] < X[sorted[b]][col]
		})

		leftSum := 0.0
		for k := 1; k < len(sorted); k++ {
			leftSum += r[sorted[k-1]]
			if X[sorted[k]][col] == X[sorted[k-1]][col] {
				continue
			}
			if k < g.MinSamplesLeaf || len(sorted)-k < g.MinSamplesLeaf {
				continue
			}
			rightSum := total - leftSum
			// 最大化 sumL²/nL + sumR²/nR 等价于最小化平方误差
			score := leftSum*leftSum/float64(k) + rightSum*rightSum/float64(len(sorted)-k)
			if score > bestSSE+1e-12 {
				bestSSE = score
				bestCol = col
				bestThr = (X[sorted[k]][col] + X[sorted[k-1]][col]) / 2
				found = true
			}
		}
	}

	if !found {
		return leafNode(r, idx)
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if X[i][bestCol] <= bestThr {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		return leafNode(r, idx)
	}

	return &treeNode{
		feature:   bestCol,
		threshold: bestThr,
		left:      g.buildTree(X, r, leftIdx, depth+1),
		right:     g.buildTree(X, r, rightIdx, depth+1),
	}
}

func leafNode(r []float64, idx []int) *treeNode {
	sum := 0.0
	for _, i := range idx {
		sum += r[i]
	}
	v := 0.0
	if len(idx) > 0 {
		v = sum / float64(len(idx))
	}
	return &treeNode{leaf: true, value: v}
}
