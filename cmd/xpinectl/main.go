// xpinectl 是 xpine 日志 tag 引擎的命令行工具。
//
// 用法:
//
//	xpinectl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config       引擎配置文件（.yaml/.yml/.json）
//	-r, --rule         包名替换规则 match=replacement，可重复，追加在配置文件规则之后
//	    --tag-format   tag 格式：package（默认）或 camel
//	    --template     消息模板，支持 {package} {class} {method} {line} {message}
//	    --log-level    xpinectl 自身诊断日志级别（默认: warn）
//
// 命令:
//
//	tag <symbol>          将 Go 符号解析为 tag 与消息
//	encode <package>...   包名编码为占位符形式
//	decode <text>...      占位符解码
//	segment <ident>...    驼峰分段
//	compress <package>... 包名逐段去元音
//	demo                  运行真实 Engine 输出示例日志
//
// 退出码:
//
//	0: 成功
//	1: 执行失败
//	2: 参数错误
//
// 示例:
//
//	xpinectl tag 'github.com/acme/app/server.(*Conn).Serve.func1' --line 42
//	xpinectl -r github.com/acme/app=APP encode github.com/acme/app/server
//	xpinectl segment parseHTTPRequest
//	xpinectl -c xpine.yaml demo --interval 1s --count 30
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入）
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// createApp 创建 CLI 应用。
func createApp(stdout, stderr io.Writer) *cli.Command {
	app := &cli.Command{
		Name:      "xpinectl",
		Usage:     "xpine 日志 tag 引擎命令行工具",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "引擎配置文件（.yaml/.yml/.json）",
			},
			&cli.StringSliceFlag{
				Name:    "rule",
				Aliases: []string{"r"},
				Usage:   "包名替换规则 match=replacement，可重复",
			},
			&cli.StringFlag{
				Name:  "tag-format",
				Usage: "tag 格式：package 或 camel",
			},
			&cli.StringFlag{
				Name:  "template",
				Usage: "消息模板，如 \"{class}#{method}, {line} ----> {message}\"",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "诊断日志级别",
				Value: "warn",
			},
		},
		Commands: createCommands(),
		// 由 run() 统一映射退出码，禁止 urfave/cli 直接 os.Exit
		ExitErrHandler: func(_ context.Context, cmd *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(cmd.Root().ErrWriter, err)
			}
		},
	}
	markUsageErrors(app)
	return app
}

// markUsageErrors 将 flag 解析错误统一包装为 usageError
func markUsageErrors(cmd *cli.Command) {
	cmd.OnUsageError = func(_ context.Context, _ *cli.Command, err error, _ bool) error {
		return &usageError{msg: err.Error()}
	}
	for _, sub := range cmd.Commands {
		markUsageErrors(sub)
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		if isCLIUsageError(err) {
			// ExitErrHandler 已输出错误详情
			return 2
		}
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}

// isCLIUsageError 识别 urfave/cli 产生的参数错误（未知命令、缺少 flag 参数等）
func isCLIUsageError(err error) bool {
	if _, ok := err.(cli.ExitCoder); ok {
		return true
	}
	msg := err.Error()
	for _, s := range []string{
		"flag provided but not defined",
		"flag needs an argument",
		"invalid value",
		"No help topic",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
