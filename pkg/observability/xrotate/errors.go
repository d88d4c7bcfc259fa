package xrotate

import "errors"

var (
	// ErrInvalidPath 文件路径为空、含空字节或不指向文件
	ErrInvalidPath = errors.New("xrotate: invalid path")

	// ErrInvalidPolicy 轮转策略取值越界，或没有任何备份清理策略
	ErrInvalidPolicy = errors.New("xrotate: invalid policy")

	// ErrClosed 文件已关闭
	ErrClosed = errors.New("xrotate: file closed")
)
