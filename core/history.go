package core

import (
	"sort"
	"time"
)

// HistoryRun 是一次推荐运行的记录：时间戳 + 本次产出的食物名。
type HistoryRun struct {
	Timestamp time.Time `json:"timestamp"`
	Foods     []string  `json:"foods"`
}

// HistoryRecord 是按用户持久化的推荐历史。
//
// 不变式（每次 Update 之后必须成立）：
//   - len(Runs) <= MaxRuns（最老的先丢弃）
//   - ExcludedFoods == Runs 中所有 Foods 的并集（派生字段，只能整体重算）
type HistoryRecord struct {
	Runs          []HistoryRun `json:"runs"`
	ExcludedFoods []string     `json:"excluded_foods"`
}

// NewHistoryRecord 返回一条空历史（首次请求时使用）。
func NewHistoryRecord() *HistoryRecord {
	return &HistoryRecord{
		Runs:          make([]HistoryRun, 0),
		ExcludedFoods: make([]string, 0),
	}
}

// Excluded 返回当前排除集（食物名集合）。
func (r *HistoryRecord) Excluded() map[string]bool {
	set := make(map[string]bool, len(r.ExcludedFoods))
	for _, name := range r.ExcludedFoods {
		set[name] = true
	}
	return set
}

// RecomputeExcluded 以 Runs 为准整体重算 ExcludedFoods（排序保证结果确定）。
func (r *HistoryRecord) RecomputeExcluded() {
	set := make(map[string]bool)
	for _, run := range r.Runs {
		for _, name := range run.Foods {
			set[name] = true
		}
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	r.ExcludedFoods = out
}
