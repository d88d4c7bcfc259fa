package xlog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/omeyang/xpine/pkg/observability/xrotate"
)

// ReplaceAttrFunc 同 slog.HandlerOptions.ReplaceAttr，返回空 Key 时丢弃该属性
type ReplaceAttrFunc func(groups []string, a slog.Attr) slog.Attr

// handlerFactories 支持的输出格式
var handlerFactories = map[string]func(io.Writer, *slog.HandlerOptions) slog.Handler{
	"text": func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewTextHandler(w, o) },
	"json": func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewJSONHandler(w, o) },
}

// Builder 构建 Logger
//
// 第一个配置错误被保留，之后的 Set 调用不再生效，错误在 Build 时返回。
type Builder struct {
	out     io.Writer
	file    *xrotate.File
	format  string
	opts    slog.HandlerOptions
	level   *slog.LevelVar
	onError func(error)
	err     error
}

// New 默认写 stderr，Info 级别，text 格式
func New() *Builder {
	return &Builder{
		out:    os.Stderr,
		format: "text",
		level:  new(slog.LevelVar),
	}
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// SetOutput 设置输出目标
func (b *Builder) SetOutput(w io.Writer) *Builder {
	if b.err != nil {
		return b
	}
	if w == nil {
		return b.fail(errors.New("xlog: nil output"))
	}
	b.out = w
	return b
}

// SetLevel 设置初始级别
func (b *Builder) SetLevel(level Level) *Builder {
	if b.err == nil {
		b.level.Set(slog.Level(level))
	}
	return b
}

// SetLevelString 以名称设置初始级别，见 ParseLevel
func (b *Builder) SetLevelString(s string) *Builder {
	if b.err != nil {
		return b
	}
	level, err := ParseLevel(s)
	if err != nil {
		return b.fail(err)
	}
	return b.SetLevel(level)
}

// SetFormat 设置输出格式：text 或 json，空串等同 text
func (b *Builder) SetFormat(format string) *Builder {
	if b.err != nil {
		return b
	}
	name := strings.ToLower(strings.TrimSpace(format))
	if name == "" {
		name = "text"
	}
	if _, ok := handlerFactories[name]; !ok {
		return b.fail(fmt.Errorf("xlog: unknown format %q", format))
	}
	b.format = name
	return b
}

// SetAddSource 记录 slog 的 source 属性
//
// 经 xpine 输出的消息本身带有调用位置，一般不需要。
func (b *Builder) SetAddSource(enable bool) *Builder {
	b.opts.AddSource = enable
	return b
}

// SetRotation 改为写入轮转日志文件，Build 返回的 cleanup 负责关闭
func (b *Builder) SetRotation(filename string, opts ...xrotate.Option) *Builder {
	if b.err != nil {
		return b
	}
	f, err := xrotate.Open(filename, opts...)
	if err != nil {
		return b.fail(err)
	}
	if b.file != nil {
		_ = b.file.Close() //nolint:errcheck // 被新文件替换
	}
	b.file = f
	b.out = f
	return b
}

// SetOnError handler 写入失败时的回调
//
// 在日志调用的 goroutine 中同步执行；回调期间再次失败只计数不回调，回调 panic 被吞掉。
func (b *Builder) SetOnError(fn func(error)) *Builder {
	b.onError = fn
	return b
}

// SetReplaceAttr 设置属性改写函数
func (b *Builder) SetReplaceAttr(fn ReplaceAttrFunc) *Builder {
	b.opts.ReplaceAttr = fn
	return b
}

// Build 返回 Logger 与 cleanup；cleanup 关闭 SetRotation 打开的文件，可重复调用
func (b *Builder) Build() (LoggerWithLevel, func() error, error) {
	if b.err != nil {
		if b.file != nil {
			_ = b.file.Close() //nolint:errcheck // 构建已失败
		}
		return nil, nil, b.err
	}

	opts := b.opts
	opts.Level = b.level
	l := &logger{
		handler: handlerFactories[b.format](b.out, &opts),
		shared: &shared{
			level:     b.level,
			addSource: opts.AddSource,
			onError:   b.onError,
		},
	}

	cleanup := func() error { return nil }
	if f := b.file; f != nil {
		cleanup = sync.OnceValue(f.Close)
	}
	return l, cleanup, nil
}
