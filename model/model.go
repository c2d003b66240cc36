package model

// Regressor 是排序阶段的最小抽象：在特征矩阵上拟合，再对单行特征输出一个可比较的分数。
// 模型是请求级的一次性状态：每次请求在当前可用候选集上重新拟合，不跨请求复用。
type Regressor interface {
	Name() string
	Fit(X [][]float64, y []float64) error
	PredictRow(x []float64) float64
}
