package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xpine/pkg/observability/xlog"
	"github.com/omeyang/xpine/pkg/observability/xpine"
	"github.com/omeyang/xpine/pkg/observability/xrotate"
)

// errDemoUpstream demo 中模拟的下游错误
var errDemoUpstream = errors.New("upstream unavailable")

// logSink Engine 与 Reloader 共有的日志入口
type logSink interface {
	Info(ctx context.Context, msg string) error
	Error(ctx context.Context, msg string, err error) error
}

type demoOptions struct {
	logFile   string
	format    string
	count     int
	interval  time.Duration
	maxSizeMB int
}

// createDemoCommand 创建 demo 子命令。
func createDemoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "运行真实 Engine 输出示例日志",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "输出到按大小轮转的日志文件（默认 stdout）",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "输出格式：text（tag: message 行）或 json（xlog 结构化记录）",
				Value: "text",
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "输出条数",
				Value: 3,
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "输出间隔；与 --config 同时使用时监听配置文件热更新",
			},
			&cli.IntFlag{
				Name:  "max-size",
				Usage: "日志文件轮转大小（MB）",
				Value: xrotate.DefaultMaxSizeMB,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdDemo(ctx, cmd, demoOptions{
				logFile:   cmd.String("log-file"),
				format:    cmd.String("format"),
				count:     cmd.Int("count"),
				interval:  cmd.Duration("interval"),
				maxSizeMB: cmd.Int("max-size"),
			})
		},
	}
}

func cmdDemo(ctx context.Context, cmd *cli.Command, opts demoOptions) error {
	if opts.count <= 0 {
		return newUsageError("--count 必须大于 0")
	}
	if opts.format != "text" && opts.format != "json" {
		return newUsageError("未知的输出格式 %q", opts.format)
	}
	diag, err := newDiagLogger(cmd)
	if err != nil {
		return err
	}

	em, closeEmitter, err := demoEmitter(cmd, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeEmitter(); cerr != nil {
			diag.Warn(ctx, "close output failed", xlog.Err(cerr))
		}
	}()

	sink, stop, err := demoSink(ctx, cmd, diag, em, opts)
	if err != nil {
		return err
	}
	defer stop()

	svc := &demoService{log: sink}
	return svc.Run(ctx, opts.count, opts.interval)
}

// demoEmitter 按 --format 与 --log-file 选择输出端
func demoEmitter(cmd *cli.Command, opts demoOptions) (xpine.Emitter, func() error, error) {
	rotate := []xrotate.Option{xrotate.WithMaxSize(opts.maxSizeMB)}

	switch {
	case opts.format == "text" && opts.logFile != "":
		em, err := xpine.NewFileEmitter(opts.logFile, rotate...)
		if err != nil {
			return nil, nil, err
		}
		return em, em.Close, nil
	case opts.format == "text":
		return xpine.NewWriterEmitter(cmd.Root().Writer), func() error { return nil }, nil
	case opts.logFile != "":
		logger, cleanup, err := xlog.New().
			SetFormat("json").
			SetLevel(xlog.LevelDebug).
			SetRotation(opts.logFile, rotate...).
			Build()
		if err != nil {
			return nil, nil, err
		}
		return xpine.NewLoggerEmitter(logger), cleanup, nil
	default:
		logger, err := newLogger(cmd.Root().Writer, "json", "debug")
		if err != nil {
			return nil, nil, err
		}
		return xpine.NewLoggerEmitter(logger), func() error { return nil }, nil
	}
}

// demoSink 构建日志入口；提供配置文件且有输出间隔时启用热更新
func demoSink(ctx context.Context, cmd *cli.Command, diag xlog.Logger, em xpine.Emitter, opts demoOptions) (logSink, func(), error) {
	path := cmd.String("config")
	if path == "" || opts.interval <= 0 {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil, nil, err
		}
		engine, err := buildEngine(cfg, em)
		if err != nil {
			return nil, nil, err
		}
		return engine, func() {}, nil
	}

	factory := func(cfg xpine.Config) (*xpine.Engine, error) {
		merged, err := applyFlags(cmd, cfg)
		if err != nil {
			return nil, err
		}
		return buildEngine(merged, em)
	}
	r, err := xpine.NewReloader(path, factory, xpine.WithOnReload(func(cfg xpine.Config, err error) {
		if err != nil {
			diag.Warn(ctx, "config reload failed, keeping previous engine", xlog.Err(err))
			return
		}
		diag.Info(ctx, "config reloaded",
			slog.Int("rules", len(cfg.Rules)),
			slog.String("tag_format", cfg.TagFormat),
		)
	}))
	if err != nil {
		return nil, nil, err
	}
	return r, func() {
		if err := r.Stop(); err != nil {
			diag.Warn(ctx, "stop reloader failed", xlog.Err(err))
		}
	}, nil
}

// demoService 模拟业务代码：每次日志调用的 tag 与类名、方法名都来自这里
type demoService struct {
	log logSink
}

// Run 输出 count 条日志，ctx 取消时提前返回
func (s *demoService) Run(ctx context.Context, count int, interval time.Duration) error {
	for i := range count {
		if err := s.handle(ctx, i); err != nil {
			return err
		}
		if interval <= 0 || i == count-1 {
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
	return nil
}

func (s *demoService) handle(ctx context.Context, seq int) error {
	if seq%3 == 2 {
		return s.log.Error(ctx, fmt.Sprintf("request %d failed", seq), errDemoUpstream)
	}
	return s.log.Info(ctx, fmt.Sprintf("request %d handled", seq))
}
