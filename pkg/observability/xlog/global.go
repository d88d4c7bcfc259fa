package xlog

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// std 进程级默认 Logger；nil 表示尚未创建
var (
	std   atomic.Pointer[LoggerWithLevel]
	stdMu sync.Mutex
)

// Default 返回进程级默认 Logger
//
// 首次调用时创建：stderr、Info、text。xpine 的 Builder 没有 emitter 时写到这里。
func Default() LoggerWithLevel {
	if l := std.Load(); l != nil {
		return *l
	}
	stdMu.Lock()
	defer stdMu.Unlock()
	if l := std.Load(); l != nil {
		return *l
	}
	l := newDefault()
	std.Store(&l)
	return l
}

func newDefault() LoggerWithLevel {
	l, _, err := New().Build()
	if err == nil {
		return l
	}
	// 默认参数不会触发配置错误，这里只是保证 Default 永不返回 nil
	fmt.Fprintf(os.Stderr, "xlog: default logger: %v\n", err)
	level := new(slog.LevelVar)
	return &logger{
		handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
		shared:  &shared{level: level},
	}
}

// SetDefault 替换默认 Logger，nil 被忽略
func SetDefault(l LoggerWithLevel) {
	if l == nil {
		return
	}
	stdMu.Lock()
	std.Store(&l)
	stdMu.Unlock()
}

// ResetDefault 丢弃默认 Logger，下次 Default 重新创建；测试用
func ResetDefault() {
	stdMu.Lock()
	std.Store(nil)
	stdMu.Unlock()
}
