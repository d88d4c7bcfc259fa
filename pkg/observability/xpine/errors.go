package xpine

import "errors"

var (
	// ErrNotConfigured Engine 缺少 formatter 或 emitter（未通过 Builder 构建）
	ErrNotConfigured = errors.New("xpine: engine is not configured")

	// ErrStackShape 调用栈深度不足，无法定位真实调用方
	//
	// 通常意味着二进制的栈形态被改变（如 caller skip 配置错误或帧被裁剪），
	// 此时生成的 tag 不可信，必须显式失败。
	ErrStackShape = errors.New("xpine: call stack too shallow to resolve caller")
)

// Builder 配置错误
var (
	// ErrEmptyPattern 替换规则的 match 为空
	ErrEmptyPattern = errors.New("xpine: empty package replace pattern")

	// ErrNilFormatter formatter 为 nil
	ErrNilFormatter = errors.New("xpine: nil formatter")

	// ErrNilEmitter emitter 为 nil
	ErrNilEmitter = errors.New("xpine: nil emitter")

	// ErrInvalidCallerSkip caller skip 为负数或超出捕获深度
	ErrInvalidCallerSkip = errors.New("xpine: invalid caller skip")

	// ErrUnknownTagFormat 配置中的 tag 格式未知
	ErrUnknownTagFormat = errors.New("xpine: unknown tag format")

	// ErrBuilderReused Builder 已调用过 Build
	ErrBuilderReused = errors.New("xpine: builder already used")
)

// 配置加载错误
var (
	// ErrEmptyPath 配置文件路径为空
	ErrEmptyPath = errors.New("xpine: empty config path")

	// ErrUnsupportedFormat 不支持的配置格式
	ErrUnsupportedFormat = errors.New("xpine: unsupported config format")

	// ErrLoadFailed 读取配置失败
	ErrLoadFailed = errors.New("xpine: failed to load config")

	// ErrParseFailed 解析配置失败
	ErrParseFailed = errors.New("xpine: failed to parse config")

	// ErrReloaderStopped Reloader 已停止
	ErrReloaderStopped = errors.New("xpine: reloader stopped")
)
