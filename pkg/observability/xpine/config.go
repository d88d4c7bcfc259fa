package xpine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 配置文件格式
type Format string

// 支持的配置格式
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// RuleConfig 配置文件中的一条替换规则
type RuleConfig struct {
	Match       string `koanf:"match"`
	Replacement string `koanf:"replacement"`
}

// Config Engine 的文件配置
//
//	rules:
//	  - match: github.com/acme/payments
//	    replacement: PAY
//	tag_format: package
//	message_template: "{class}#{method}, {line} ----> {message}"
//	caller_skip: 0
//
// 规则使用列表而非映射：包名中的 "." 会与 koanf 的键分隔符冲突，且列表保留注册顺序。
type Config struct {
	Rules           []RuleConfig `koanf:"rules"`
	TagFormat       string       `koanf:"tag_format"`
	MessageTemplate string       `koanf:"message_template"`
	CallerSkip      int          `koanf:"caller_skip"`
}

// LoadConfig 从文件加载配置，按扩展名识别格式（.yaml/.yml/.json）
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, ErrEmptyPath
	}
	format, err := detectFormat(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return ParseConfig(data, format)
}

// ParseConfig 从字节数据解析配置，空数据得到零值 Config
func ParseConfig(data []byte, format Format) (Config, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var cfg Config
	if len(data) == 0 {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return cfg, nil
}

// detectFormat 根据文件扩展名检测配置格式
func detectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}
