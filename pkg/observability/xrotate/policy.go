package xrotate

import "fmt"

// 默认轮转策略
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 7
	DefaultMaxAgeDays = 30
)

// bound 闭区间取值范围
type bound struct{ lo, hi int }

func (b bound) check(field string, v int) error {
	if v < b.lo || v > b.hi {
		return fmt.Errorf("%w: %s=%d, want %d~%d", ErrInvalidPolicy, field, v, b.lo, b.hi)
	}
	return nil
}

var (
	sizeBound    = bound{1, 10 << 10}
	backupsBound = bound{0, 1 << 10}
	ageBound     = bound{0, 10 * 365}
)

// Policy 轮转与清理策略
type Policy struct {
	// MaxSizeMB 当前文件超过该大小（MB）时轮转
	MaxSizeMB int
	// MaxBackups 保留的备份数，0 表示只按天数清理
	MaxBackups int
	// MaxAgeDays 备份保留天数，0 表示只按个数清理
	MaxAgeDays int
	// Compress gzip 压缩备份
	Compress bool
	// LocalTime 备份文件名使用本地时间而非 UTC
	LocalTime bool
}

// DefaultPolicy 100MB 轮转，保留 7 个备份、30 天，压缩
func DefaultPolicy() Policy {
	return Policy{
		MaxSizeMB:  DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAgeDays: DefaultMaxAgeDays,
		Compress:   true,
	}
}

// Validate 校验取值范围；MaxBackups 与 MaxAgeDays 不能同时为 0，否则备份无限增长
func (p Policy) Validate() error {
	if err := sizeBound.check("MaxSizeMB", p.MaxSizeMB); err != nil {
		return err
	}
	if err := backupsBound.check("MaxBackups", p.MaxBackups); err != nil {
		return err
	}
	if err := ageBound.check("MaxAgeDays", p.MaxAgeDays); err != nil {
		return err
	}
	if p.MaxBackups == 0 && p.MaxAgeDays == 0 {
		return fmt.Errorf("%w: backups would never be cleaned", ErrInvalidPolicy)
	}
	return nil
}

// Option 修改 Policy
type Option func(*Policy)

// WithMaxSize 设置轮转大小（MB）
func WithMaxSize(mb int) Option { return func(p *Policy) { p.MaxSizeMB = mb } }

// WithMaxBackups 设置保留的备份数
func WithMaxBackups(n int) Option { return func(p *Policy) { p.MaxBackups = n } }

// WithMaxAge 设置备份保留天数
func WithMaxAge(days int) Option { return func(p *Policy) { p.MaxAgeDays = days } }

// WithCompress 设置是否压缩备份
func WithCompress(on bool) Option { return func(p *Policy) { p.Compress = on } }

// WithLocalTime 设置备份文件名是否使用本地时间
func WithLocalTime(on bool) Option { return func(p *Policy) { p.LocalTime = on } }
