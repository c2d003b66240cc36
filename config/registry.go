package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/mealkit/core"
	"github.com/rushteam/mealkit/store"
)

// StoreBuilder 根据 StoreConfig 构建一个存储后端。
type StoreBuilder func(cfg StoreConfig) (core.Store, error)

var (
	storeBuilders   = make(map[string]StoreBuilder)
	storeBuildersMu sync.RWMutex
)

// RegisterStore 注册一种存储后端的构建逻辑。
// 自定义后端在 init 中调用即可被配置驱动，例如：
// func init() { config.RegisterStore("etcd", BuildEtcdStore) }
func RegisterStore(backend string, builder StoreBuilder) {
	if backend == "" || builder == nil {
		return
	}
	storeBuildersMu.Lock()
	defer storeBuildersMu.Unlock()
	storeBuilders[backend] = builder
}

// SupportedBackends 返回当前已注册的后端列表（排序），用于错误提示与校验。
func SupportedBackends() []string {
	storeBuildersMu.RLock()
	defer storeBuildersMu.RUnlock()
	backends := make([]string, 0, len(storeBuilders))
	for b := range storeBuilders {
		backends = append(backends, b)
	}
	sort.Strings(backends)
	return backends
}

// BuildStore 根据配置构建存储后端；未注册的类型返回包含已支持列表的错误。
func BuildStore(cfg StoreConfig) (core.Store, error) {
	storeBuildersMu.RLock()
	builder, ok := storeBuilders[cfg.Backend]
	storeBuildersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown store backend %q, supported: %v", cfg.Backend, SupportedBackends())
	}
	return builder(cfg)
}

func init() {
	RegisterStore("memory", func(StoreConfig) (core.Store, error) {
		return store.NewMemoryStore(), nil
	})
	RegisterStore("file", func(cfg StoreConfig) (core.Store, error) {
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file store: dir is required")
		}
		return store.NewFileStore(cfg.Dir)
	})
	RegisterStore("sqlite", func(cfg StoreConfig) (core.Store, error) {
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite store: path is required")
		}
		return store.NewSQLiteStore(cfg.Path)
	})
	RegisterStore("redis", func(cfg StoreConfig) (core.Store, error) {
		if cfg.Addr == "" {
			return nil, fmt.Errorf("redis store: addr is required")
		}
		return store.NewRedisStore(cfg.Addr, cfg.Password, cfg.DB)
	})
}
