package xlog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level 日志级别，数值与 slog.Level 相同
type Level slog.Level

// 标准级别
const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// levelNames ParseLevel 接受的名称，包含 Android 日志优先级的写法
var levelNames = map[string]Level{
	"debug": LevelDebug, "d": LevelDebug, "verbose": LevelDebug, "v": LevelDebug,
	"info": LevelInfo, "i": LevelInfo,
	"warn": LevelWarn, "warning": LevelWarn, "w": LevelWarn,
	"error": LevelError, "e": LevelError, "assert": LevelError, "a": LevelError,
}

// String 标准级别输出大写名称，其余沿用 slog 的 "INFO+2" 写法
func (l Level) String() string {
	return slog.Level(l).String()
}

// MarshalText 实现 encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler，接受 ParseLevel 的所有写法
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel 大小写不敏感地解析级别名称
func ParseLevel(s string) (Level, error) {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return LevelInfo, fmt.Errorf("xlog: unknown level %q", s)
}
