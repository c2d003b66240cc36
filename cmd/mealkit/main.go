// mealkit 命令：从 stdin 读取一条请求 JSON，输出一次推荐结果 JSON。
//
//	echo '{"user_id":"u1","tdee":2100,"allergies":"Milk, Peanut"}' | mealkit -config mealkit.yaml
//
// 致命错误输出 {"error": ..., "traceback": ...} 并以非零码退出。
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/rushteam/mealkit/catalog"
	"github.com/rushteam/mealkit/config"
	"github.com/rushteam/mealkit/engine"
	"github.com/rushteam/mealkit/filter"
	"github.com/rushteam/mealkit/history"
	"github.com/rushteam/mealkit/profile"
)

// errorResponse 是致命错误的输出结构。
type errorResponse struct {
	Error     string `json:"error"`
	Traceback string `json:"traceback"`
}

func main() {
	var (
		configPath  = flag.String("config", "", "配置文件路径（YAML），缺省为内存存储")
		catalogPath = flag.String("catalog", "", "食物目录 CSV 路径，优先于配置文件中的 catalog")
	)
	flag.Parse()

	if err := run(*configPath, *catalogPath); err != nil {
		fatal(err)
	}
}

func run(configPath, catalogPath string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.LoadFromYAML(configPath)
		if err != nil {
			return err
		}
	}
	if catalogPath != "" {
		cfg.Catalog = catalogPath
	}
	if cfg.Catalog == "" {
		return fmt.Errorf("catalog path is required (-catalog or catalog in config)")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || cfg.Log.Level == "" {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	cat, err := catalog.LoadFile(cfg.Catalog)
	if err != nil {
		return err
	}
	logger.Info().Str("path", cfg.Catalog).Int("foods", cat.Len()).Msg("catalog loaded")

	backend, err := config.BuildStore(cfg.Store)
	if err != nil {
		return err
	}
	defer backend.Close()

	hist := history.New(backend)
	if cfg.History.MaxRuns > 0 {
		hist.MaxRuns = cfg.History.MaxRuns
	}
	if cfg.History.AvgFoodsPerRun > 0 {
		hist.AvgFoodsPerRun = cfg.History.AvgFoodsPerRun
	}

	opts := []engine.Option{engine.WithLogger(logger)}
	if len(cfg.Rules) > 0 {
		rules, err := filter.NewRuleFilter(cfg.Rules)
		if err != nil {
			return err
		}
		opts = append(opts, engine.WithRules(rules))
	}
	eng := engine.New(cat, hist, opts...)

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	user, err := profile.ParseRequest(data)
	if err != nil {
		return err
	}

	resp, err := eng.Recommend(context.Background(), user)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func fatal(err error) {
	out, _ := json.Marshal(errorResponse{
		Error:     err.Error(),
		Traceback: fmt.Sprintf("%+v", err),
	})
	fmt.Fprintln(os.Stdout, string(out))
	os.Exit(1)
}
