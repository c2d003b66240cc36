// Package engine 把各组件装配成完整的推荐链路：
// 历史加载 → 排除过滤 → 启发式标签 → 请求级模型训练 → 四个槽位选餐 → 历史回写。
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/mealkit/catalog"
	"github.com/rushteam/mealkit/core"
	"github.com/rushteam/mealkit/feature"
	"github.com/rushteam/mealkit/filter"
	"github.com/rushteam/mealkit/history"
	"github.com/rushteam/mealkit/model"
	"github.com/rushteam/mealkit/pipeline"
	"github.com/rushteam/mealkit/rank"
	"github.com/rushteam/mealkit/rerank"
)

// MealSize 是每个槽位的目标条数。
const MealSize = 2

// Engine 是推荐引擎：目录与特征空间在构造时固定，历史经注入的存储服务读写。
//
// 同一 user_id 的请求内部按用户互斥锁串行化，
// 避免 load → update → save 的读改写竞态丢失历史。
// 模型是请求级状态：每次请求在当前可用候选集上重新拟合，绝不跨请求复用。
type Engine struct {
	catalog *catalog.Catalog
	schema  *feature.Schema
	history *history.Store
	rules   *filter.RuleFilter
	logger  zerolog.Logger

	mu       sync.Mutex
	userLock map[string]*sync.Mutex
}

// Option 配置 Engine 的可选项。
type Option func(*Engine)

// WithLogger 注入结构化日志。
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger.With().Str("component", "engine").Logger()
	}
}

// WithRules 注入膳食规则过滤器（CEL 表达式，见 filter.RuleFilter）。
func WithRules(rules *filter.RuleFilter) Option {
	return func(e *Engine) { e.rules = rules }
}

// New 创建引擎。特征 Schema 从目录一次性构建，之后不再变化。
func New(cat *catalog.Catalog, hist *history.Store, opts ...Option) *Engine {
	e := &Engine{
		catalog:  cat,
		schema:   feature.BuildSchema(cat.Foods),
		history:  hist,
		logger:   zerolog.Nop(),
		userLock: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Response 是一次推荐的完整结果：四个槽位的食物名 + 更新后的历史。
type Response struct {
	Meals   map[string][]string `json:"meals"`
	History *core.HistoryRecord `json:"history"`
}

// Recommend 执行一次完整的推荐。
// 槽位级失败只清空该槽位；仅输入/持久化级错误作为失败返回。
func (e *Engine) Recommend(ctx context.Context, user *core.UserProfile) (*Response, error) {
	unlock := e.lockUser(user.UserID)
	defer unlock()

	logger := e.logger.With().Str("user_id", user.UserID).Logger()

	rec, err := e.history.Load(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	excluded := rec.Excluded()
	logger.Info().
		Int("runs", len(rec.Runs)).
		Int("excluded", len(excluded)).
		Msg("history loaded")

	// 保鲜截断：工作排除集过大时收缩，持久化记录不动
	if trimmed := e.history.TrimExcluded(excluded); len(trimmed) < len(excluded) {
		logger.Info().
			Int("before", len(excluded)).
			Int("after", len(trimmed)).
			Msg("trimming working exclusion set for freshness")
		excluded = trimmed
	}

	// 安全重置：排除集覆盖整个目录时历史作废，本次用全量目录
	if len(excluded) >= e.catalog.Len() {
		logger.Info().Msg("exclusion set covers entire catalog, resetting history")
		rec, err = e.history.Reset(ctx, user.UserID)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		excluded = nil
	}

	items, err := e.eligibleItems(ctx, excluded)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if len(items) == 0 {
		// 排除集未覆盖目录但可用候选为空（目录内重名），同样走重置
		logger.Info().Msg("no eligible candidates left, resetting history")
		rec, err = e.history.Reset(ctx, user.UserID)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		items = e.catalog.Items()
	}

	reg, scaler, cols, err := e.train(items, user, logger)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	// 四个槽位独立选餐：各自克隆候选，互不影响；单槽失败只清空该槽
	results := make([][]string, len(core.MealTypes))
	g, gctx := errgroup.WithContext(ctx)
	for i, mt := range core.MealTypes {
		i, mt := i, mt
		g.Go(func() error {
			results[i] = e.selectMeal(gctx, user, mt, items, reg, scaler, cols, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	var newNames []string
	meals := make(map[string][]string, len(core.MealTypes))
	for i, mt := range core.MealTypes {
		if results[i] == nil {
			results[i] = []string{}
		}
		meals[string(mt)] = results[i]
		newNames = append(newNames, results[i]...)
	}

	e.history.Update(rec, newNames)
	if err := e.history.Save(ctx, user.UserID, rec); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	logger.Info().
		Int("recommended", len(newNames)).
		Int("runs", len(rec.Runs)).
		Int("excluded", len(rec.ExcludedFoods)).
		Msg("recommendation complete")

	return &Response{Meals: meals, History: rec}, nil
}

// eligibleItems 组装可用候选集：全量目录经历史排除过滤器裁剪。
func (e *Engine) eligibleItems(ctx context.Context, excluded map[string]bool) ([]*core.Item, error) {
	items := e.catalog.Items()
	if len(excluded) == 0 {
		return items, nil
	}
	node := &filter.Node{Filters: []filter.Filter{filter.NewExcludedFilter(excluded)}}
	return node.Process(ctx, nil, items)
}

// train 在全部可用候选上生成启发式标签并拟合请求级模型。
// 模型看到的是未按槽位/过敏原切分的完整可用集，学到的平滑面跨槽位泛化。
func (e *Engine) train(
	items []*core.Item,
	user *core.UserProfile,
	logger zerolog.Logger,
) (model.Regressor, *feature.MinMaxScaler, []string, error) {
	if failed := rank.LabelItems(items, user.Target()); failed > 0 {
		logger.Warn().
			Int("failed_rows", failed).
			Float64("fallback", rank.FallbackFitness).
			Msg("fitness fallback applied to rows")
	}

	foods := make([]*core.Food, len(items))
	y := make([]float64, len(items))
	for i, it := range items {
		foods[i] = it.Food
		y[i] = it.Target
	}

	X, cols := e.schema.Encode(foods, nil)
	scaler := &feature.MinMaxScaler{}
	Xs, err := scaler.FitTransform(X)
	if err != nil {
		return nil, nil, nil, err
	}

	reg := model.NewGradientBoostedRegressor()
	if err := reg.Fit(Xs, y); err != nil {
		return nil, nil, nil, err
	}
	logger.Debug().
		Int("rows", len(Xs)).
		Int("features", len(cols)).
		Msg("model trained")

	if logger.GetLevel() <= zerolog.DebugLevel {
		pred := reg.Predict(Xs)
		logger.Debug().
			Float64("mae", model.MAE(y, pred)).
			Float64("rmse", model.RMSE(y, pred)).
			Float64("r2", model.R2(y, pred)).
			Float64("spearman", model.SpearmanRho(y, pred)).
			Msg("training fit metrics")
	}
	return reg, scaler, cols, nil
}

// selectMeal 为单个槽位跑一条 Filter → Rank → ReRank 的 Pipeline。
// 任何错误（含 panic）都只清空该槽位，不影响其余槽位。
func (e *Engine) selectMeal(
	ctx context.Context,
	user *core.UserProfile,
	mealType core.MealType,
	items []*core.Item,
	reg model.Regressor,
	scaler *feature.MinMaxScaler,
	cols []string,
	logger zerolog.Logger,
) (names []string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Str("meal_type", string(mealType)).
				Any("panic", r).
				Msg("meal selection panicked, returning empty slot")
			names = nil
		}
	}()

	filters := []filter.Filter{
		&filter.MealTypeFilter{},
		&filter.AllergyFilter{},
		&filter.SugarFilter{},
	}
	if e.rules != nil {
		filters = append(filters, e.rules)
	}

	pl := &pipeline.Pipeline{Nodes: []pipeline.Node{
		&filter.Node{Filters: filters},
		&rank.ModelNode{Model: reg, Schema: e.schema, Scaler: scaler, Columns: cols},
		&rerank.BalancedPickNode{Size: MealSize},
	}}

	rctx := &core.RecommendContext{
		UserID:   user.UserID,
		User:     user,
		MealType: mealType,
	}

	// 每个槽位克隆候选：Rank 会改写 Score 并重排，槽位之间不能共享
	cloned := make([]*core.Item, len(items))
	for i, it := range items {
		c := core.NewItem(it.Food)
		c.Target = it.Target
		cloned[i] = c
	}

	out, err := pl.Run(ctx, rctx, cloned)
	if err != nil {
		logger.Warn().
			Str("meal_type", string(mealType)).
			Err(err).
			Msg("meal selection failed, returning empty slot")
		return nil
	}

	names = make([]string, 0, len(out))
	for _, it := range out {
		names = append(names, it.Food.Name)
	}
	logger.Debug().
		Str("meal_type", string(mealType)).
		Strs("foods", names).
		Msg("meal slot selected")
	return names
}

func (e *Engine) lockUser(userID string) func() {
	e.mu.Lock()
	lock, ok := e.userLock[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.userLock[userID] = lock
	}
	e.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
