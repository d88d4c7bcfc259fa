package xlog

import "log/slog"

// xpine 写入 xlog 时使用的属性 key
const (
	KeyTag       = "tag"
	KeyError     = "error"
	KeyComponent = "component"
)

// Tag 调用位置 tag；空 tag 得到空属性，slog 输出时会跳过
func Tag(tag string) slog.Attr {
	if tag == "" {
		return slog.Attr{}
	}
	return slog.String(KeyTag, tag)
}

// Err 错误属性；nil 得到空属性
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Component 标记输出日志的组件，如 "xpinectl"
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}
