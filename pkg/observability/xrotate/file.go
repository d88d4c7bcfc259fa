package xrotate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

var _ io.WriteCloser = (*File)(nil)

// File 按大小轮转的日志文件
//
// lumberjack 内部持锁，File 只负责关闭状态：关闭后 Write、Rotate、Close 都返回 ErrClosed。
type File struct {
	lj     *lumberjack.Logger
	policy Policy
	closed atomic.Bool
}

// Open 以 DefaultPolicy 叠加 opts 打开日志文件
//
// 父目录不存在时以 0750 创建；文件本身在首次写入时以 0600 创建。
func Open(filename string, opts ...Option) (*File, error) {
	policy := DefaultPolicy()
	for _, opt := range opts {
		if opt != nil {
			opt(&policy)
		}
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	path, err := cleanPath(filename)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("xrotate: create directory for %s: %w", path, err)
	}

	return &File{
		policy: policy,
		lj: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    policy.MaxSizeMB,
			MaxBackups: policy.MaxBackups,
			MaxAge:     policy.MaxAgeDays,
			Compress:   policy.Compress,
			LocalTime:  policy.LocalTime,
		},
	}, nil
}

func cleanPath(filename string) (string, error) {
	switch {
	case filename == "":
		return "", fmt.Errorf("%w: empty filename", ErrInvalidPath)
	case strings.IndexByte(filename, 0) >= 0:
		return "", fmt.Errorf("%w: null byte in %q", ErrInvalidPath, filename)
	}
	path := filepath.Clean(filename)
	switch filepath.Base(path) {
	case ".", "..", string(filepath.Separator):
		return "", fmt.Errorf("%w: %q names a directory", ErrInvalidPath, filename)
	}
	return path, nil
}

// Path 规范化后的文件路径
func (f *File) Path() string { return f.lj.Filename }

// Policy 生效的轮转策略
func (f *File) Policy() Policy { return f.policy }

// Write 追加写入，超过 MaxSizeMB 时先轮转
func (f *File) Write(p []byte) (int, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	n, err := f.lj.Write(p)
	return n, f.closedOr(err)
}

// Rotate 立即轮转：当前文件成为备份，后续写入新文件
func (f *File) Rotate() error {
	if f.closed.Load() {
		return ErrClosed
	}
	return f.closedOr(f.lj.Rotate())
}

// Close 关闭文件
func (f *File) Close() error {
	if f.closed.Swap(true) {
		return ErrClosed
	}
	return f.lj.Close()
}

// closedOr 与 Close 并发的写入失败统一报告为 ErrClosed
func (f *File) closedOr(err error) error {
	if err != nil && f.closed.Load() {
		return ErrClosed
	}
	return err
}
