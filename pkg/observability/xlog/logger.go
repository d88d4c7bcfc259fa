package xlog

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
)

var _ LoggerWithLevel = (*logger)(nil)

// shared 同一次 Build 派生出的所有 Logger 共享的状态
type shared struct {
	level     *slog.LevelVar
	addSource bool
	onError   func(error)
	// failures handler 写入失败与回调 panic 的累计次数
	failures atomic.Uint64
	// reporting 非零表示 onError 正在执行，期间的新错误只计数
	reporting atomic.Bool
}

type logger struct {
	handler slog.Handler
	shared  *shared
}

// emit 所有写入方法的唯一出口，必须由导出方法直接调用，
// 否则 AddSource 指向的帧会偏移
//
//go:noinline
func (l *logger) emit(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.handler.Enabled(ctx, level) {
		return
	}
	var pc uintptr
	if l.shared.addSource {
		// runtime.Callers → emit → 导出方法 → 调用方
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		pc = pcs[0]
	}
	r := slog.NewRecord(time.Now(), level, msg, pc)
	r.AddAttrs(attrs...)
	if err := l.handler.Handle(ctx, r); err != nil {
		l.shared.report(err)
	}
}

func (s *shared) report(err error) {
	s.failures.Add(1)
	if s.onError == nil || !s.reporting.CompareAndSwap(false, true) {
		return
	}
	defer s.reporting.Store(false)
	defer func() {
		if recover() != nil {
			s.failures.Add(1)
		}
	}()
	s.onError(err)
}

func (l *logger) Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, slog.LevelDebug, msg, attrs)
}

func (l *logger) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, slog.LevelInfo, msg, attrs)
}

func (l *logger) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, slog.LevelWarn, msg, attrs)
}

func (l *logger) Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, slog.LevelError, msg, attrs)
}

func (l *logger) Log(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	l.emit(ctx, slog.Level(level), msg, attrs)
}

func (l *logger) With(attrs ...slog.Attr) Logger {
	if len(attrs) == 0 {
		return l
	}
	return &logger{handler: l.handler.WithAttrs(attrs), shared: l.shared}
}

func (l *logger) WithGroup(name string) Logger {
	if name == "" {
		return l
	}
	return &logger{handler: l.handler.WithGroup(name), shared: l.shared}
}

func (l *logger) SetLevel(level Level) { l.shared.level.Set(slog.Level(level)) }

func (l *logger) GetLevel() Level { return Level(l.shared.level.Level()) }

func (l *logger) Enabled(ctx context.Context, level Level) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.handler.Enabled(ctx, slog.Level(level))
}
