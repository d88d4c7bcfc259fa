package xpine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/omeyang/xpine/pkg/observability/xlog"
)

// EngineFactory 根据配置构建 Engine
//
// 自定义 factory 用于在配置之外追加 emitter、formatter 或 meter provider。
type EngineFactory func(cfg Config) (*Engine, error)

// DefaultEngineFactory 仅使用配置构建 Engine，输出到 xlog.Default()
func DefaultEngineFactory(cfg Config) (*Engine, error) {
	return NewBuilder().ApplyConfig(cfg).Build()
}

// ReloadCallback 重载回调，err 非 nil 时继续使用旧 Engine
type ReloadCallback func(cfg Config, err error)

// ReloaderOption Reloader 配置选项
type ReloaderOption func(*reloaderOptions)

type reloaderOptions struct {
	debounce time.Duration
	onReload ReloadCallback
}

// WithReloadDebounce 设置防抖时间，默认 100ms
func WithReloadDebounce(d time.Duration) ReloaderOption {
	return func(o *reloaderOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithOnReload 设置重载回调（包括文件监听错误）
func WithOnReload(fn ReloadCallback) ReloaderOption {
	return func(o *reloaderOptions) {
		o.onReload = fn
	}
}

// Reloader 监听配置文件并在变更时整体替换 Engine
//
// 替换通过原子指针完成，正在进行的日志调用继续使用旧 Engine，
// 规则集与 formatter 永远不会被原地修改。新配置构建失败时保留旧 Engine。
type Reloader struct {
	path     string
	factory  EngineFactory
	debounce time.Duration
	onReload ReloadCallback

	current atomic.Pointer[Engine]
	// loadMu 串行化读文件与替换，晚开始的加载不会被早开始的覆盖
	loadMu  sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	pending sync.WaitGroup
}

// NewReloader 加载配置、构建首个 Engine 并开始监听文件
//
// factory 为 nil 时使用 DefaultEngineFactory。首次加载失败直接返回错误。
// 使用完毕必须调用 Stop。
func NewReloader(path string, factory EngineFactory, opts ...ReloaderOption) (*Reloader, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if factory == nil {
		factory = DefaultEngineFactory
	}
	options := reloaderOptions{debounce: 100 * time.Millisecond}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	r := &Reloader{
		path:     path,
		factory:  factory,
		debounce: options.debounce,
		onReload: options.onReload,
		done:     make(chan struct{}),
	}
	if _, err := r.load(); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xpine: failed to create watcher: %w", err)
	}
	// 监听目录：编辑器保存时可能先删除再创建文件
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return nil, errors.Join(
			fmt.Errorf("xpine: failed to watch directory %s: %w", dir, err),
			w.Close(),
		)
	}
	r.watcher = w

	go r.run()
	return r, nil
}

// Engine 返回当前 Engine
func (r *Reloader) Engine() *Engine {
	return r.current.Load()
}

// Reload 立即重新加载配置
//
// 失败时返回错误并保留旧 Engine；Stop 之后返回 ErrReloaderStopped。
func (r *Reloader) Reload() error {
	r.mu.Lock()
	stopped := r.stopped
	r.mu.Unlock()
	if stopped {
		return ErrReloaderStopped
	}
	_, err := r.load()
	return err
}

// Stop 停止监听，等待进行中的重载完成
//
// 可重复调用。Stop 后 Engine 仍可继续使用。
func (r *Reloader) Stop() error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return nil
	}
	r.stopped = true
	if r.timer != nil && r.timer.Stop() {
		r.pending.Done()
	}
	r.timer = nil
	r.mu.Unlock()

	err := r.watcher.Close()
	<-r.done
	r.pending.Wait()
	return err
}

// Log 使用当前 Engine 记录日志
func (r *Reloader) Log(ctx context.Context, level xlog.Level, msg string, err error) error {
	return r.Engine().log(ctx, level, msg, err)
}

// Info 使用当前 Engine 记录 Info 级别日志
func (r *Reloader) Info(ctx context.Context, msg string) error {
	return r.Engine().log(ctx, xlog.LevelInfo, msg, nil)
}

// Error 使用当前 Engine 记录 Error 级别日志
func (r *Reloader) Error(ctx context.Context, msg string, err error) error {
	return r.Engine().log(ctx, xlog.LevelError, msg, err)
}

func (r *Reloader) load() (Config, error) {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()
	cfg, err := LoadConfig(r.path)
	if err != nil {
		return cfg, err
	}
	e, err := r.factory(cfg)
	if err != nil {
		return cfg, err
	}
	r.current.Store(e)
	return cfg, nil
}

func (r *Reloader) run() {
	defer close(r.done)
	filename := filepath.Base(r.path)
	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			r.handleEvent(event, filename)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.notify(Config{}, fmt.Errorf("xpine: watch error: %w", err))
		}
	}
}

func (r *Reloader) handleEvent(event fsnotify.Event, filename string) {
	if filepath.Base(event.Name) != filename {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	// 被取消的定时器不会再执行，由这里归还计数
	if r.timer != nil && r.timer.Stop() {
		r.pending.Done()
	}
	r.pending.Add(1)
	r.timer = time.AfterFunc(r.debounce, func() {
		defer r.pending.Done()
		r.mu.Lock()
		stopped := r.stopped
		r.mu.Unlock()
		if stopped {
			return
		}
		cfg, err := r.load()
		r.notify(cfg, err)
	})
}

func (r *Reloader) notify(cfg Config, err error) {
	if r.onReload != nil {
		r.onReload(cfg, err)
	}
}
