package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rushteam/mealkit/core"
)

// FileStore 是文件实现的 Store：每个 key 对应目录下的一个 JSON 文件。
// 与原始的 {user_id}_recommendation_history.json 单文件持久化形态对齐。
// 写入经由临时文件 + rename，同一文件的并发写由上层按 key 串行化。
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: mkdir %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

var _ core.Store = (*FileStore)(nil)

func (f *FileStore) Name() string { return "file" }

// path 把 key 映射到目录下的文件名；路径分隔符替换掉，防止逃出目录。
func (f *FileStore) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(f.dir, safe)
}

func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, core.ErrStoreNotFound
		}
		return nil, fmt.Errorf("filestore: read %q: %w", key, err)
	}
	return data, nil
}

func (f *FileStore) Set(_ context.Context, key string, value []byte) error {
	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("filestore: write %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("filestore: rename %q: %w", key, err)
	}
	return nil
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("filestore: delete %q: %w", key, err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }
