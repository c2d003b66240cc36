// Package history 实现推荐历史的轮换存储：
// 按用户持久化最近若干次运行，推导排除集，并负责保鲜截断与安全重置。
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/rushteam/mealkit/core"
)

const (
	// DefaultMaxRuns 历史保留的最大运行次数，最老的先丢弃。
	DefaultMaxRuns = 15
	// DefaultAvgFoodsPerRun 估算的单次运行推荐条数，用于保鲜截断上限。
	DefaultAvgFoodsPerRun = 5
)

// Store 是历史轮换存储服务：读写走注入的 core.Store 后端，
// 轮换与排除集推导在内存中完成。
//
// Load → 变更 → Save 的序列对同一 user_id 的并发请求不安全，
// 调用方（引擎）必须按 user_id 串行化。
type Store struct {
	// Backend 持久化后端（memory / file / redis / sqlite）。
	Backend core.Store

	// MaxRuns 保留的最大运行次数，<= 0 时取 DefaultMaxRuns。
	MaxRuns int

	// AvgFoodsPerRun 估算的单次推荐条数，<= 0 时取 DefaultAvgFoodsPerRun。
	AvgFoodsPerRun int

	// Now 可注入的时钟，便于测试；为 nil 时用 time.Now。
	Now func() time.Time
}

// New 用指定后端创建历史存储服务（默认轮换参数）。
func New(backend core.Store) *Store {
	return &Store{Backend: backend}
}

func (s *Store) maxRuns() int {
	if s.MaxRuns > 0 {
		return s.MaxRuns
	}
	return DefaultMaxRuns
}

func (s *Store) avgFoodsPerRun() int {
	if s.AvgFoodsPerRun > 0 {
		return s.AvgFoodsPerRun
	}
	return DefaultAvgFoodsPerRun
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Key 返回用户历史在后端中的 key。
func (s *Store) Key(userID string) string {
	return fmt.Sprintf("%s_recommendation_history.json", userID)
}

// Load 读取用户历史；无记录时返回空历史（不报错）。
func (s *Store) Load(ctx context.Context, userID string) (*core.HistoryRecord, error) {
	data, err := s.Backend.Get(ctx, s.Key(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return core.NewHistoryRecord(), nil
		}
		return nil, fmt.Errorf("history: load %q: %w", userID, err)
	}
	rec := core.NewHistoryRecord()
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("history: decode %q: %w", userID, err)
	}
	return rec, nil
}

// Save 持久化用户历史。
func (s *Store) Save(ctx context.Context, userID string, rec *core.HistoryRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("history: encode %q: %w", userID, err)
	}
	if err := s.Backend.Set(ctx, s.Key(userID), data); err != nil {
		return fmt.Errorf("history: save %q: %w", userID, err)
	}
	return nil
}

// Update 追加一次运行并维护不变式：
// len(Runs) <= MaxRuns（最老的先裁掉），ExcludedFoods 整体重算为 Runs 的并集。
// 返回传入的记录本身（就地修改）。
func (s *Store) Update(rec *core.HistoryRecord, newNames []string) *core.HistoryRecord {
	// 空运行序列化为 []，不是 null
	if newNames == nil {
		newNames = []string{}
	}
	rec.Runs = append(rec.Runs, core.HistoryRun{
		Timestamp: s.now(),
		Foods:     newNames,
	})
	if max := s.maxRuns(); len(rec.Runs) > max {
		rec.Runs = rec.Runs[len(rec.Runs)-max:]
	}
	rec.RecomputeExcluded()
	return rec
}

// Reset 把用户历史清空并立即持久化，返回空记录。
// 用于安全重置：排除集覆盖整个目录时历史整体作废。
func (s *Store) Reset(ctx context.Context, userID string) (*core.HistoryRecord, error) {
	rec := core.NewHistoryRecord()
	if err := s.Save(ctx, userID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// TrimExcluded 对工作排除集做保鲜截断：超过 MaxRuns * AvgFoodsPerRun 时
// 只保留一个该上限大小的子集（按名称排序取前段，保证确定性）。
// 只影响本次请求的内存副本，持久化记录不动。
func (s *Store) TrimExcluded(excluded map[string]bool) map[string]bool {
	limit := s.maxRuns() * s.avgFoodsPerRun()
	if len(excluded) <= limit {
		return excluded
	}
	names := make([]string, 0, len(excluded))
	for name := range excluded {
		names = append(names, name)
	}
	sort.Strings(names)
	trimmed := make(map[string]bool, limit)
	for _, name := range names[:limit] {
		trimmed[name] = true
	}
	return trimmed
}
