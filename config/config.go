// Package config 定义引擎的配置结构（YAML）与存储后端的注册表。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是引擎的完整配置。
type Config struct {
	// Catalog 是食物目录 CSV 的路径。
	Catalog string `yaml:"catalog"`

	Store   StoreConfig   `yaml:"store"`
	History HistoryConfig `yaml:"history"`

	// Rules 是可选的膳食规则（CEL 表达式），全部成立的食物才会保留。
	// 例如：'food.cholesterol_mg <= 100.0' 或 '!food.contains["gluten"]'
	Rules []string `yaml:"rules"`

	Log LogConfig `yaml:"log"`
}

// StoreConfig 是历史存储后端的配置，Backend 决定其余字段哪些生效。
type StoreConfig struct {
	// Backend 为 memory / file / sqlite / redis 之一。
	Backend string `yaml:"backend"`

	// Dir 是 file 后端的目录。
	Dir string `yaml:"dir"`
	// Path 是 sqlite 后端的数据库文件路径。
	Path string `yaml:"path"`
	// Addr / Password / DB 是 redis 后端的连接参数。
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// HistoryConfig 是历史轮换的参数，零值使用 history 包的默认值。
type HistoryConfig struct {
	MaxRuns        int `yaml:"max_runs"`
	AvgFoodsPerRun int `yaml:"avg_foods_per_run"`
}

// LogConfig 是日志配置。
type LogConfig struct {
	// Level 为 zerolog 级别名（debug / info / warn / error），默认 info。
	Level string `yaml:"level"`
}

// Default 返回默认配置：内存存储、info 日志。
func Default() *Config {
	return &Config{
		Store: StoreConfig{Backend: "memory"},
		Log:   LogConfig{Level: "info"},
	}
}

// LoadFromYAML 从 YAML 文件加载配置，未设置的字段保持默认值。
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}
