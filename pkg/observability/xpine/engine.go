package xpine

import (
	"context"
	"fmt"

	"github.com/omeyang/xpine/pkg/observability/xlog"
)

// Engine 调用位置感知的日志格式化引擎
//
// 由 [Builder] 构建，构建后不可变，可并发使用。
// 零值 Engine 的所有方法返回 ErrNotConfigured。
type Engine struct {
	rules      RuleSet
	tag        TagFormatter
	message    MessageFormatter
	emitters   []Emitter
	callerSkip int
	metrics    *engineMetrics
}

// Rules 返回引擎使用的规则集
func (e *Engine) Rules() RuleSet {
	if e == nil {
		return RuleSet{}
	}
	return e.rules
}

// Log 解析调用方位置，格式化 tag 与消息并输出
//
// 调用方为 xpine 包之外的第一个帧（再跳过 caller skip 个帧）。
// 栈深度不足返回 ErrStackShape，此时不输出任何内容。
func (e *Engine) Log(ctx context.Context, level xlog.Level, msg string, err error) error {
	return e.log(ctx, level, msg, err)
}

// Logf 与 Log 相同，消息由 fmt.Sprintf 生成
func (e *Engine) Logf(ctx context.Context, level xlog.Level, err error, format string, args ...any) error {
	return e.log(ctx, level, fmt.Sprintf(format, args...), err)
}

// Debug 记录 Debug 级别日志
func (e *Engine) Debug(ctx context.Context, msg string) error {
	return e.log(ctx, xlog.LevelDebug, msg, nil)
}

// Info 记录 Info 级别日志
func (e *Engine) Info(ctx context.Context, msg string) error {
	return e.log(ctx, xlog.LevelInfo, msg, nil)
}

// Warn 记录 Warn 级别日志
func (e *Engine) Warn(ctx context.Context, msg string) error {
	return e.log(ctx, xlog.LevelWarn, msg, nil)
}

// Error 记录 Error 级别日志，err 可为 nil
func (e *Engine) Error(ctx context.Context, msg string, err error) error {
	return e.log(ctx, xlog.LevelError, msg, err)
}

//go:noinline
func (e *Engine) log(ctx context.Context, level xlog.Level, msg string, err error) error {
	if !e.configured() {
		return ErrNotConfigured
	}
	if ctx == nil {
		ctx = context.Background()
	}

	frame, ferr := Caller(e.callerSkip)
	if ferr != nil {
		return ferr
	}

	tag, message := e.format(ResolveFrame(frame), msg)
	for _, em := range e.emitters {
		em.Emit(ctx, level, tag, message, err)
	}
	e.metrics.record(ctx, level, tag, message)
	return nil
}

// Format 对已解析的调用位置执行编码、格式化与解码，不输出
func (e *Engine) Format(site CallSite, msg string) (tag, message string, err error) {
	if !e.configured() {
		return "", "", ErrNotConfigured
	}
	tag, message = e.format(site, msg)
	return tag, message, nil
}

// FormatFrame 与 Format 相同，输入为原始调用帧
func (e *Engine) FormatFrame(f Frame, msg string) (tag, message string, err error) {
	return e.Format(ResolveFrame(f), msg)
}

// format 编码包名 → 构造 Record → 调用 formatter → 分别解码 tag 与消息
func (e *Engine) format(site CallSite, msg string) (string, string) {
	site.Package = e.rules.Encode(site.Package)
	rec := Record{CallSite: site, Message: msg}

	tag := e.rules.Decode(e.tag.FormatTag(site))
	message := e.rules.Decode(e.message.FormatMessage(rec))
	return tag, message
}

func (e *Engine) configured() bool {
	return e != nil && e.tag != nil && e.message != nil && len(e.emitters) > 0
}
