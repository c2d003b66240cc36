package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rushteam/mealkit/core"
	"github.com/rushteam/mealkit/store"
)

func testStore() *Store {
	s := New(store.NewMemoryStore())
	s.Now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestStore_LoadMissing(t *testing.T) {
	s := testStore()
	rec, err := s.Load(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rec.Runs) != 0 || len(rec.ExcludedFoods) != 0 {
		t.Errorf("missing history should load as empty record: %+v", rec)
	}
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	s := testStore()
	ctx := context.Background()

	rec := core.NewHistoryRecord()
	s.Update(rec, []string{"Oats", "Eggs"})
	if err := s.Save(ctx, "u1", rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := s.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded.Runs) != 1 || len(loaded.Runs[0].Foods) != 2 {
		t.Fatalf("loaded = %+v", loaded)
	}
	if !loaded.Runs[0].Timestamp.Equal(s.Now()) {
		t.Errorf("timestamp = %v, want %v", loaded.Runs[0].Timestamp, s.Now())
	}
	if len(loaded.ExcludedFoods) != 2 {
		t.Errorf("ExcludedFoods = %v", loaded.ExcludedFoods)
	}
}

func TestStore_UpdateRotation(t *testing.T) {
	s := testStore()
	rec := core.NewHistoryRecord()

	// 16 次运行后只保留最近 15 次，最老一次的食物退出排除集
	for i := 0; i < 16; i++ {
		s.Update(rec, []string{fmt.Sprintf("Food-%d", i)})
	}
	if len(rec.Runs) != DefaultMaxRuns {
		t.Fatalf("Runs = %d, want %d", len(rec.Runs), DefaultMaxRuns)
	}
	if rec.Runs[0].Foods[0] != "Food-1" {
		t.Errorf("oldest kept run = %v, want Food-1", rec.Runs[0].Foods)
	}

	excluded := rec.Excluded()
	if excluded["Food-0"] {
		t.Error("rotated-out food should leave the exclusion set")
	}
	if !excluded["Food-1"] || !excluded["Food-15"] {
		t.Errorf("exclusion set out of sync: %v", rec.ExcludedFoods)
	}
	if len(excluded) != DefaultMaxRuns {
		t.Errorf("exclusion size = %d, want %d", len(excluded), DefaultMaxRuns)
	}
}

func TestStore_UpdateEmptyRun(t *testing.T) {
	s := testStore()
	rec := core.NewHistoryRecord()
	s.Update(rec, nil)
	if len(rec.Runs) != 1 {
		t.Errorf("empty run should still be appended, Runs = %d", len(rec.Runs))
	}

	// 空运行持久化为 "foods": []，不是 null
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"foods":[]`) {
		t.Errorf("empty run should marshal as an empty array, got %s", data)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("record should not contain null fields, got %s", data)
	}
}

func TestStore_Reset(t *testing.T) {
	s := testStore()
	ctx := context.Background()

	rec := core.NewHistoryRecord()
	s.Update(rec, []string{"Oats"})
	if err := s.Save(ctx, "u1", rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	fresh, err := s.Reset(ctx, "u1")
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if len(fresh.Runs) != 0 || len(fresh.ExcludedFoods) != 0 {
		t.Errorf("Reset() = %+v, want empty", fresh)
	}

	// 重置立即持久化
	loaded, _ := s.Load(ctx, "u1")
	if len(loaded.Runs) != 0 {
		t.Errorf("reset should persist immediately, loaded %d runs", len(loaded.Runs))
	}
}

func TestStore_TrimExcluded(t *testing.T) {
	s := testStore()
	limit := DefaultMaxRuns * DefaultAvgFoodsPerRun

	small := map[string]bool{"A": true}
	if got := s.TrimExcluded(small); len(got) != 1 {
		t.Errorf("under-limit set should pass through, got %d", len(got))
	}

	big := make(map[string]bool, limit+10)
	for i := 0; i < limit+10; i++ {
		big[fmt.Sprintf("Food-%03d", i)] = true
	}
	got := s.TrimExcluded(big)
	if len(got) != limit {
		t.Fatalf("trimmed size = %d, want %d", len(got), limit)
	}
	// 确定性：排序取前段
	if !got["Food-000"] {
		t.Error("trim should keep the sorted-first subset")
	}
	if got[fmt.Sprintf("Food-%03d", limit+9)] {
		t.Error("trim should drop the sorted-last names")
	}
	// 原集合不被修改
	if len(big) != limit+10 {
		t.Error("TrimExcluded should not mutate its input")
	}
}

func TestStore_Key(t *testing.T) {
	s := testStore()
	if got := s.Key("alice"); got != "alice_recommendation_history.json" {
		t.Errorf("Key() = %q", got)
	}
}
