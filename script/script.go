// Package script 把多条语句生成一个 SQL 脚本
//
//	sql, err := script.Render(ctx, script.DefaultConfig(), stmt1, stmt2)
//	// stmt1;\nstmt2
//
// 每条语句在协程池中独立生成, 输出顺序与参数顺序一致.
package script

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
)

type Config struct {
	Workers   int    `json:"workers"`   // 协程池大小, 默认 8
	Separator string `json:"separator"` // 语句之间的分隔, 默认 ";\n"
}

func DefaultConfig() Config {
	return Config{
		Workers:   8,
		Separator: ";\n",
	}
}

// LoadConfig 解析 json 配置, 未设置的项使用默认值
//
//	{"workers": 4, "separator": ";\n"}
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parse script config")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultConfig().Workers
	}
	return cfg, nil
}

// Renderer 可以生成 SQL 的对象, *builder.Statement 实现了它
type Renderer interface {
	Sql() (string, error)
}

// Render 生成所有语句并用 cfg.Separator 连接
// 任意一条失败时返回该错误, 不返回部分结果
func Render(ctx context.Context, cfg Config, stmts ...Renderer) (string, error) {
	if len(stmts) == 0 {
		return "", nil
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultConfig().Workers
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return "", errors.Wrap(err, "create render pool")
	}
	defer pool.Release()

	var (
		wg   sync.WaitGroup
		out  = make([]string, len(stmts))
		errs = make([]error, len(stmts))
	)
	for i, st := range stmts {
		i, st := i, st
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return "", err
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					errs[i] = errors.Errorf("render panic: %v", p)
				}
			}()
			out[i], errs[i] = st.Sql()
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			slog.ErrorContext(ctx, "submit render task failed", "index", i, "error", err.Error())
			return "", errors.Wrap(err, "submit render task")
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			slog.ErrorContext(ctx, "render statement failed", "index", i, "error", err.Error())
			return "", errors.Wrapf(err, "statement %d", i)
		}
	}
	slog.DebugContext(ctx, "render script", "statements", len(stmts), "workers", workers)
	return strings.Join(out, cfg.Separator), nil
}
