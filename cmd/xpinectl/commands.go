package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xpine/pkg/observability/xlog"
	"github.com/omeyang/xpine/pkg/observability/xpine"
)

// exitError 表示需要非零退出码但已完成输出的场景。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// usageError 参数错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func newUsageError(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createTagCommand(),
		createEncodeCommand(),
		createDecodeCommand(),
		createSegmentCommand(),
		createCompressCommand(),
		createDemoCommand(),
	}
}

// createTagCommand 创建 tag 子命令：Go 符号 → tag 与消息。
func createTagCommand() *cli.Command {
	return &cli.Command{
		Name:      "tag",
		Aliases:   []string{"t"},
		Usage:     "将 Go 符号解析为 tag 与消息",
		ArgsUsage: "<symbol>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "line",
				Aliases: []string{"l"},
				Usage:   "行号",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "源文件路径，普通函数以文件名作为类名",
			},
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "日志消息",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return newUsageError("tag 命令需要且只需要一个符号参数")
			}
			frame := xpine.Frame{
				Function: cmd.Args().First(),
				File:     cmd.String("file"),
				Line:     cmd.Int("line"),
			}
			return cmdTag(ctx, cmd, frame, cmd.String("message"))
		},
	}
}

// createEncodeCommand 创建 encode 子命令。
func createEncodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "包名编码为占位符形式",
		ArgsUsage: "<package>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return eachArg(ctx, cmd, "encode", func(rules xpine.RuleSet, arg string) string {
				return rules.Encode(strings.ReplaceAll(arg, "/", "."))
			})
		},
	}
}

// createDecodeCommand 创建 decode 子命令。
func createDecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "将占位符替换为规则的 replacement",
		ArgsUsage: "<text>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return eachArg(ctx, cmd, "decode", func(rules xpine.RuleSet, arg string) string {
				return rules.Decode(arg)
			})
		},
	}
}

// createSegmentCommand 创建 segment 子命令。
func createSegmentCommand() *cli.Command {
	return &cli.Command{
		Name:      "segment",
		Usage:     "按驼峰边界分段",
		ArgsUsage: "<identifier>...",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return printEach(cmd, "segment", func(arg string) string {
				return strings.Join(xpine.SplitCamel(arg), " ")
			})
		},
	}
}

// createCompressCommand 创建 compress 子命令。
func createCompressCommand() *cli.Command {
	return &cli.Command{
		Name:      "compress",
		Usage:     "包名逐段去元音",
		ArgsUsage: "<package>...",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return printEach(cmd, "compress", func(arg string) string {
				site := xpine.CallSite{Package: strings.ReplaceAll(arg, "/", ".")}
				return xpine.PackageTagFormatter{}.FormatTag(site)
			})
		},
	}
}

// cmdTag 对给定帧执行完整格式化流程（不输出到 emitter）。
func cmdTag(ctx context.Context, cmd *cli.Command, frame xpine.Frame, msg string) error {
	logger, err := newDiagLogger(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	engine, err := buildEngine(cfg, discardEmitter())
	if err != nil {
		return err
	}

	site := xpine.ResolveFrame(frame)
	logger.Debug(ctx, "resolved frame",
		slog.String("package", site.Package),
		slog.String("class", site.Class),
		slog.String("method", site.Method),
	)

	tag, message, err := engine.FormatFrame(frame, msg)
	if err != nil {
		return err
	}
	w := cmd.Root().Writer
	fmt.Fprintln(w, tag)
	fmt.Fprintln(w, message)
	return nil
}

// eachArg 基于当前规则集逐个处理参数并逐行输出。
func eachArg(ctx context.Context, cmd *cli.Command, name string, fn func(xpine.RuleSet, string) string) error {
	logger, err := newDiagLogger(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	engine, err := buildEngine(cfg, discardEmitter())
	if err != nil {
		return err
	}
	rules := engine.Rules()
	logger.Debug(ctx, "rules loaded", slog.Int("count", rules.Len()))

	return printEach(cmd, name, func(arg string) string {
		return fn(rules, arg)
	})
}

func printEach(cmd *cli.Command, name string, fn func(string) string) error {
	if cmd.Args().Len() == 0 {
		return newUsageError("%s 命令需要至少一个参数", name)
	}
	w := cmd.Root().Writer
	for _, arg := range cmd.Args().Slice() {
		fmt.Fprintln(w, fn(arg))
	}
	return nil
}

// loadConfig 读取 --config 并叠加命令行规则与格式设置。
func loadConfig(cmd *cli.Command) (xpine.Config, error) {
	var cfg xpine.Config
	if path := cmd.String("config"); path != "" {
		loaded, err := xpine.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	return applyFlags(cmd, cfg)
}

// applyFlags 将命令行设置叠加到配置上：规则追加在配置文件规则之后，其余项覆盖。
func applyFlags(cmd *cli.Command, cfg xpine.Config) (xpine.Config, error) {
	rules := make([]xpine.RuleConfig, 0, len(cfg.Rules))
	rules = append(rules, cfg.Rules...)
	for _, raw := range cmd.StringSlice("rule") {
		rule, err := parseRule(raw)
		if err != nil {
			return cfg, err
		}
		rules = append(rules, rule)
	}
	cfg.Rules = rules

	if format := cmd.String("tag-format"); format != "" {
		cfg.TagFormat = format
	}
	if tpl := cmd.String("template"); tpl != "" {
		cfg.MessageTemplate = tpl
	}
	return cfg, nil
}

// parseRule 解析 match=replacement
func parseRule(raw string) (xpine.RuleConfig, error) {
	match, replacement, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(match) == "" {
		return xpine.RuleConfig{}, newUsageError("无效的规则 %q，格式应为 match=replacement", raw)
	}
	return xpine.RuleConfig{Match: strings.TrimSpace(match), Replacement: replacement}, nil
}

// buildEngine 基于配置构建 Engine，配置本身的错误视为参数错误。
func buildEngine(cfg xpine.Config, emitters ...xpine.Emitter) (*xpine.Engine, error) {
	b := xpine.NewBuilder().ApplyConfig(cfg)
	for _, em := range emitters {
		b.AddEmitter(em)
	}
	engine, err := b.Build()
	if err != nil {
		if errors.Is(err, xpine.ErrUnknownTagFormat) ||
			errors.Is(err, xpine.ErrEmptyPattern) ||
			errors.Is(err, xpine.ErrInvalidCallerSkip) {
			return nil, &usageError{msg: err.Error()}
		}
		return nil, err
	}
	return engine, nil
}

func discardEmitter() xpine.Emitter {
	return xpine.EmitterFunc(func(context.Context, xlog.Level, string, string, error) {})
}

// newDiagLogger 创建 xpinectl 自身的诊断 logger，输出到 stderr。
func newDiagLogger(cmd *cli.Command) (xlog.Logger, error) {
	logger, err := newLogger(cmd.Root().ErrWriter, "text", cmd.String("log-level"))
	if err != nil {
		return nil, err
	}
	return logger.With(xlog.Component("xpinectl")), nil
}

func newLogger(w io.Writer, format, level string) (xlog.LoggerWithLevel, error) {
	logger, _, err := xlog.New().
		SetOutput(w).
		SetFormat(format).
		SetLevelString(level).
		Build()
	if err != nil {
		return nil, &usageError{msg: err.Error()}
	}
	return logger, nil
}
