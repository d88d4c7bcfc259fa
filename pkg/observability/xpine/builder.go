package xpine

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/xpine/pkg/observability/xlog"
)

// 配置中支持的 tag 格式
const (
	TagFormatPackage = "package"
	TagFormatCamel   = "camel"
)

// Builder Engine 构建器
//
// first-error-wins：记录第一个配置错误后，后续设置被跳过，由 Build 返回该错误。
// Builder 为一次性使用，Build 之后再次调用返回 ErrBuilderReused。
//
// 未设置的部分在 Build 时使用默认值：
//   - tag：PackageTagFormatter
//   - message：DefaultMessageFormatter
//   - emitter：NewLoggerEmitter(xlog.Default())
//   - meter provider：otel.GetMeterProvider()
type Builder struct {
	rules         []Rule
	tag           TagFormatter
	message       MessageFormatter
	emitters      []Emitter
	callerSkip    int
	meterProvider metric.MeterProvider
	built         bool
	err           error
}

// NewBuilder 创建构建器
func NewBuilder() *Builder {
	return &Builder{}
}

// AddPackageReplacePattern 注册包名替换规则，注册顺序即优先级
//
// match 可以写成 import path 形式（"github.com/acme/app"），
// 会被规范为点分形式以匹配 CallSite.Package。
func (b *Builder) AddPackageReplacePattern(match, replacement string) *Builder {
	if b.err != nil {
		return b
	}
	if match == "" {
		b.err = fmt.Errorf("%w: replacement %q", ErrEmptyPattern, replacement)
		return b
	}
	b.rules = append(b.rules, Rule{
		Match:       strings.ReplaceAll(match, "/", "."),
		Replacement: replacement,
	})
	return b
}

// SetTagFormatter 设置 tag formatter
func (b *Builder) SetTagFormatter(f TagFormatter) *Builder {
	if b.err != nil {
		return b
	}
	if f == nil {
		b.err = fmt.Errorf("%w: tag formatter", ErrNilFormatter)
		return b
	}
	b.tag = f
	return b
}

// SetTagFormat 按名称选择内置 tag formatter：package（默认）或 camel
func (b *Builder) SetTagFormat(name string) *Builder {
	if b.err != nil {
		return b
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", TagFormatPackage:
		b.tag = PackageTagFormatter{}
	case TagFormatCamel:
		b.tag = CamelTagFormatter{}
	default:
		b.err = fmt.Errorf("%w: %q", ErrUnknownTagFormat, name)
	}
	return b
}

// SetMessageFormatter 设置消息 formatter
func (b *Builder) SetMessageFormatter(f MessageFormatter) *Builder {
	if b.err != nil {
		return b
	}
	if f == nil {
		b.err = fmt.Errorf("%w: message formatter", ErrNilFormatter)
		return b
	}
	b.message = f
	return b
}

// SetMessageTemplate 使用模板消息格式，空模板保持默认格式
func (b *Builder) SetMessageTemplate(template string) *Builder {
	if b.err != nil || template == "" {
		return b
	}
	b.message = NewTemplateMessageFormatter(template)
	return b
}

// AddEmitter 追加输出端，每次日志调用按添加顺序依次输出
func (b *Builder) AddEmitter(e Emitter) *Builder {
	if b.err != nil {
		return b
	}
	if e == nil {
		b.err = ErrNilEmitter
		return b
	}
	b.emitters = append(b.emitters, e)
	return b
}

// SetLogger 追加输出到 xlog.Logger 的 Emitter
func (b *Builder) SetLogger(l xlog.Logger) *Builder {
	if l == nil {
		return b.AddEmitter(nil)
	}
	return b.AddEmitter(NewLoggerEmitter(l))
}

// SetCallerSkip 设置在 xpine 之外额外跳过的帧数
//
// 用于在 Engine 外再包一层日志函数的场景：包装函数本身不应成为 tag 来源。
func (b *Builder) SetCallerSkip(skip int) *Builder {
	if b.err != nil {
		return b
	}
	if skip < 0 || skip >= maxCallerDepth {
		b.err = fmt.Errorf("%w: %d", ErrInvalidCallerSkip, skip)
		return b
	}
	b.callerSkip = skip
	return b
}

// SetMeterProvider 设置 OpenTelemetry MeterProvider
func (b *Builder) SetMeterProvider(provider metric.MeterProvider) *Builder {
	if b.err != nil {
		return b
	}
	if provider != nil {
		b.meterProvider = provider
	}
	return b
}

// ApplyConfig 应用从配置文件加载的设置
func (b *Builder) ApplyConfig(cfg Config) *Builder {
	for _, r := range cfg.Rules {
		b.AddPackageReplacePattern(r.Match, r.Replacement)
	}
	if cfg.TagFormat != "" {
		b.SetTagFormat(cfg.TagFormat)
	}
	b.SetMessageTemplate(cfg.MessageTemplate)
	if cfg.CallerSkip != 0 {
		b.SetCallerSkip(cfg.CallerSkip)
	}
	return b
}

// Build 构建 Engine
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, ErrBuilderReused
	}
	b.built = true
	if b.err != nil {
		return nil, b.err
	}

	e := &Engine{
		rules:      NewRuleSet(b.rules...),
		tag:        b.tag,
		message:    b.message,
		emitters:   b.emitters,
		callerSkip: b.callerSkip,
	}
	if e.tag == nil {
		e.tag = PackageTagFormatter{}
	}
	if e.message == nil {
		e.message = DefaultMessageFormatter{}
	}
	if len(e.emitters) == 0 {
		e.emitters = []Emitter{NewLoggerEmitter(xlog.Default())}
	}

	provider := b.meterProvider
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	m, err := newEngineMetrics(provider)
	if err != nil {
		return nil, err
	}
	e.metrics = m

	return e, nil
}
