package xpine

import (
	"strconv"
	"strings"
)

// messageDelimiter 默认消息中位置信息与正文之间的分隔符
const messageDelimiter = " ---> "

// Record 单次日志调用的格式化输入：调用位置 + 原始消息
type Record struct {
	CallSite
	Message string
}

// TagFormatter 将 CallSite 渲染为 tag
//
// 此时 CallSite.Package 中命中规则的部分已替换为占位符 {$<index>$}，
// formatter 应原样保留占位符，最终文本由引擎解码。
type TagFormatter interface {
	FormatTag(site CallSite) string
}

// TagFormatterFunc 函数适配器
type TagFormatterFunc func(site CallSite) string

// FormatTag 实现 TagFormatter
func (f TagFormatterFunc) FormatTag(site CallSite) string { return f(site) }

// MessageFormatter 将 Record 渲染为消息正文
type MessageFormatter interface {
	FormatMessage(rec Record) string
}

// MessageFormatterFunc 函数适配器
type MessageFormatterFunc func(rec Record) string

// FormatMessage 实现 MessageFormatter
func (f MessageFormatterFunc) FormatMessage(rec Record) string { return f(rec) }

// PackageTagFormatter 默认 tag 格式：包名逐段去元音，占位符段保持原样
//
//	com.github.bskierys.communication.ui.wrappers → cm.gthb.bskrs.cmmnctn.ui.wrpprs
type PackageTagFormatter struct{}

// FormatTag 实现 TagFormatter
func (PackageTagFormatter) FormatTag(site CallSite) string {
	segments := strings.Split(site.Package, ".")
	for i, seg := range segments {
		if isPlaceholder(seg) {
			continue
		}
		segments[i] = CompressVowels(seg)
	}
	return strings.Join(segments, ".")
}

// CamelTagFormatter 驼峰 tag 格式：每段先按驼峰拆为小写单词再去元音
//
//	{$0$}.utils.advancedHelpers → {$0$}.tls.dvncd.hlprs
type CamelTagFormatter struct{}

// FormatTag 实现 TagFormatter
func (CamelTagFormatter) FormatTag(site CallSite) string {
	var b strings.Builder
	for i, seg := range strings.Split(site.Package, ".") {
		if i > 0 {
			b.WriteByte('.')
		}
		if isPlaceholder(seg) {
			b.WriteString(seg)
			continue
		}
		first := true
		for word := range CamelSegments(seg) {
			if !first {
				b.WriteByte('.')
			}
			first = false
			b.WriteString(CompressVowels(strings.ToLower(word)))
		}
	}
	return b.String()
}

// DefaultMessageFormatter 默认消息格式："<Class>, <Method>, <Line> ---> <message>"
type DefaultMessageFormatter struct{}

// FormatMessage 实现 MessageFormatter
func (DefaultMessageFormatter) FormatMessage(rec Record) string {
	return rec.Class + ", " + rec.Method + ", " + strconv.Itoa(rec.Line) + messageDelimiter + rec.Message
}

// TemplateMessageFormatter 基于模板的消息格式
//
// 支持的变量：{package}、{class}、{method}、{line}、{message}；
// 其他文本原样输出。例如 "{class}#{method}, {line} ----> {message}"。
type TemplateMessageFormatter struct {
	template string
}

// NewTemplateMessageFormatter 创建模板消息格式
func NewTemplateMessageFormatter(template string) *TemplateMessageFormatter {
	return &TemplateMessageFormatter{template: template}
}

// FormatMessage 实现 MessageFormatter
func (f *TemplateMessageFormatter) FormatMessage(rec Record) string {
	r := strings.NewReplacer(
		"{package}", rec.Package,
		"{class}", rec.Class,
		"{method}", rec.Method,
		"{line}", strconv.Itoa(rec.Line),
		"{message}", rec.Message,
	)
	return r.Replace(f.template)
}
