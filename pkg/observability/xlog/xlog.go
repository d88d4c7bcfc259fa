package xlog

import (
	"context"
	"log/slog"
)

// Logger 结构化日志接口，所有写入方法都接收 context
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...slog.Attr)
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, attrs ...slog.Attr)

	// Log 按调用方给定的级别写入；xpine 的 LoggerEmitter 走这里
	Log(ctx context.Context, level Level, msg string, attrs ...slog.Attr)

	// With 派生带固定属性的 Logger，无属性时返回自身
	With(attrs ...slog.Attr) Logger

	// WithGroup 派生带分组的 Logger，空名称时返回自身
	WithGroup(name string) Logger
}

// Leveler 运行期调整级别
type Leveler interface {
	SetLevel(level Level)
	GetLevel() Level
	Enabled(ctx context.Context, level Level) bool
}

// LoggerWithLevel Build 的返回类型，级别对所有派生 Logger 生效
type LoggerWithLevel interface {
	Logger
	Leveler
}
