package xpine

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/omeyang/xpine/pkg/observability/xlog"
	"github.com/omeyang/xpine/pkg/observability/xrotate"
)

// Emitter 接收最终的 tag 与消息
//
// 每次日志调用对每个 Emitter 恰好调用一次。实现必须并发安全。
type Emitter interface {
	Emit(ctx context.Context, level xlog.Level, tag, message string, err error)
}

// EmitterFunc 函数适配器
type EmitterFunc func(ctx context.Context, level xlog.Level, tag, message string, err error)

// Emit 实现 Emitter
func (f EmitterFunc) Emit(ctx context.Context, level xlog.Level, tag, message string, err error) {
	f(ctx, level, tag, message, err)
}

// loggerEmitter 输出到 xlog.Logger
type loggerEmitter struct {
	logger xlog.Logger
}

// NewLoggerEmitter 创建输出到 xlog 的 Emitter
//
// 消息作为记录消息，tag 与 err 分别作为 "tag"、"error" 属性。
func NewLoggerEmitter(logger xlog.Logger) Emitter {
	return &loggerEmitter{logger: logger}
}

func (e *loggerEmitter) Emit(ctx context.Context, level xlog.Level, tag, message string, err error) {
	e.logger.Log(ctx, level, message, xlog.Tag(tag), xlog.Err(err))
}

// DefaultTimeLayout WriterEmitter 默认时间格式
const DefaultTimeLayout = time.DateTime

// WriterOption WriterEmitter 配置选项
type WriterOption func(*WriterEmitter)

// WithTimeLayout 设置行首时间格式
func WithTimeLayout(layout string) WriterOption {
	return func(e *WriterEmitter) {
		if layout != "" {
			e.layout = layout
		}
	}
}

// WithClock 设置时间来源（测试用）
func WithClock(now func() time.Time) WriterOption {
	return func(e *WriterEmitter) {
		if now != nil {
			e.now = now
		}
	}
}

// WithOnWriteError 设置写入失败回调
//
// Emit 没有返回值，写入错误只能通过回调获知。回调不得写入同一个 WriterEmitter。
func WithOnWriteError(fn func(error)) WriterOption {
	return func(e *WriterEmitter) {
		e.onError = fn
	}
}

// WriterEmitter 以纯文本行写入 io.Writer
//
// 行格式："<time> <LEVEL> <tag>: <message>"，err 非 nil 时追加 ": <err>"。
type WriterEmitter struct {
	mu      sync.Mutex
	w       io.Writer
	layout  string
	now     func() time.Time
	onError func(error)
}

// NewWriterEmitter 创建写入 w 的 Emitter
func NewWriterEmitter(w io.Writer, opts ...WriterOption) *WriterEmitter {
	e := &WriterEmitter{
		w:      w,
		layout: DefaultTimeLayout,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// NewFileEmitter 创建写入轮转日志文件的 Emitter
//
// 使用完毕需调用 Close 关闭文件。
func NewFileEmitter(filename string, opts ...xrotate.Option) (*WriterEmitter, error) {
	r, err := xrotate.Open(filename, opts...)
	if err != nil {
		return nil, err
	}
	return NewWriterEmitter(r), nil
}

// Emit 实现 Emitter
func (e *WriterEmitter) Emit(_ context.Context, level xlog.Level, tag, message string, err error) {
	var b strings.Builder
	b.WriteString(e.now().Format(e.layout))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(tag)
	b.WriteString(": ")
	b.WriteString(message)
	if err != nil {
		b.WriteString(": ")
		b.WriteString(err.Error())
	}
	b.WriteByte('\n')

	e.mu.Lock()
	_, werr := io.WriteString(e.w, b.String())
	e.mu.Unlock()

	if werr != nil && e.onError != nil {
		e.onError(werr)
	}
}

// Close 关闭底层 writer（若实现了 io.Closer）
func (e *WriterEmitter) Close() error {
	if c, ok := e.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
