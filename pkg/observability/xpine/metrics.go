package xpine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/xpine/pkg/observability/xlog"
)

const (
	instrumentationName = "github.com/omeyang/xpine"

	metricLogTotal         = "xpine.log.total"
	metricPlaceholderStale = "xpine.placeholder.stale"
)

// engineMetrics 日志调用计数与过期占位符计数
type engineMetrics struct {
	total metric.Int64Counter
	stale metric.Int64Counter
}

func newEngineMetrics(provider metric.MeterProvider) (*engineMetrics, error) {
	meter := provider.Meter(instrumentationName)

	total, err := meter.Int64Counter(
		metricLogTotal,
		metric.WithDescription("log calls emitted"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xpine: create counter failed: %w", err)
	}

	stale, err := meter.Int64Counter(
		metricPlaceholderStale,
		metric.WithDescription("formatted outputs still carrying a placeholder after decode"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xpine: create counter failed: %w", err)
	}

	return &engineMetrics{total: total, stale: stale}, nil
}

// record 记录一次输出；tag 或消息中残留占位符时计入 stale
func (m *engineMetrics) record(ctx context.Context, level xlog.Level, tag, message string) {
	if m == nil {
		return
	}
	m.total.Add(ctx, 1, metric.WithAttributes(attribute.String("level", level.String())))
	if hasPlaceholder(tag) || hasPlaceholder(message) {
		m.stale.Add(ctx, 1)
	}
}
