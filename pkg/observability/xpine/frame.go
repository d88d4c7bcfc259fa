package xpine

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// maxCallerDepth 单次捕获的最大帧数
//
// 引擎内部帧（Log → log → Caller）加上 caller skip 必须落在此范围内。
const maxCallerDepth = 32

// closureSuffix 编译器合成的后缀：闭包 .func1、.func1.2，init.0 中的 .0，
// range-over-func 循环体 -range1，可任意组合
var closureSuffix = regexp.MustCompile(`(\.func\d+|\.\d+|-range\d+)+$`)

// enginePackage xpine 自身的 import path，捕获调用方时跳过该包内的帧
var enginePackage = func() string {
	pc, _, _, _ := runtime.Caller(0)
	pkg, _ := splitSymbol(runtime.FuncForPC(pc).Name())
	return pkg
}()

// Frame 原始调用帧
type Frame struct {
	// Function 完整符号名，如 "github.com/acme/app/server.(*Conn).serve.func1"
	Function string
	// File 源文件路径
	File string
	// Line 行号
	Line int
}

// CallSite 解析后的调用位置
//
// 每次日志调用重新解析，不缓存。
type CallSite struct {
	// Package 点分包名，编码后可能含一个占位符段
	Package string
	// Class 接收者类型名；普通函数为源文件名
	Class string
	// Method 函数或方法名
	Method string
	// Line 行号
	Line int
}

// ResolveFrame 将原始帧解析为 CallSite
//
// 闭包、方法值、泛型实例化等编译器合成的后缀会被去掉，
// 调用方看到的是外层的类型与函数。
func ResolveFrame(f Frame) CallSite {
	pkgPath, name := splitSymbol(f.Function)
	class, method := splitName(cleanName(name))
	if class == "" {
		class = fileClass(f.File, pkgPath)
	}
	return CallSite{
		Package: strings.ReplaceAll(pkgPath, "/", "."),
		Class:   class,
		Method:  method,
		Line:    f.Line,
	}
}

// Caller 返回 xpine 包之外的第 skip 个调用帧，skip=0 为最近的外部调用方
//
// 捕获范围内找不到目标帧时返回 ErrStackShape。
func Caller(skip int) (Frame, error) {
	if skip < 0 {
		return Frame{}, fmt.Errorf("%w: %d", ErrInvalidCallerSkip, skip)
	}

	var pcs [maxCallerDepth]uintptr
	// 跳过 runtime.Callers 与 Caller 自身
	n := runtime.Callers(2, pcs[:])
	if n == 0 {
		return Frame{}, fmt.Errorf("%w: no frames captured", ErrStackShape)
	}

	frames := runtime.CallersFrames(pcs[:n])
	external := 0
	for {
		f, more := frames.Next()
		if pkg, _ := splitSymbol(f.Function); pkg != enginePackage {
			if external == skip {
				return Frame{Function: f.Function, File: f.File, Line: f.Line}, nil
			}
			external++
		}
		if !more {
			break
		}
	}
	return Frame{}, fmt.Errorf("%w: want external frame %d, found %d in %d frames",
		ErrStackShape, skip, external, n)
}

// splitSymbol 将符号名拆为 import path 与包内名称
//
// import path 的最后一段中的 "." 被链接器转义为 %2e，
// 因此最后一个 "/" 之后的第一个 "." 就是分隔点。
func splitSymbol(symbol string) (pkgPath, name string) {
	slash := strings.LastIndexByte(symbol, '/')
	dot := strings.IndexByte(symbol[slash+1:], '.')
	if dot < 0 {
		return unescapePath(symbol), ""
	}
	dot += slash + 1
	return unescapePath(symbol[:dot]), symbol[dot+1:]
}

func unescapePath(p string) string {
	if !strings.Contains(p, "%") {
		return p
	}
	if u, err := url.PathUnescape(p); err == nil {
		return u
	}
	return p
}

// cleanName 去掉泛型实例化、方法值与闭包后缀
func cleanName(name string) string {
	name = strings.ReplaceAll(name, "[...]", "")
	name = strings.TrimSuffix(name, "-fm")
	name = closureSuffix.ReplaceAllString(name, "")
	// 包级变量初始化中的闭包形如 glob..func1
	return strings.TrimRight(name, ".")
}

// splitName 拆分接收者类型与方法名；普通函数的 class 为空
func splitName(name string) (class, method string) {
	if strings.HasPrefix(name, "(") {
		if end := strings.IndexByte(name, ')'); end > 0 {
			class = strings.TrimPrefix(name[1:end], "*")
			method = strings.TrimPrefix(name[end+1:], ".")
			return class, method
		}
	}
	if recv, m, ok := strings.Cut(name, "."); ok {
		return recv, m
	}
	return "", name
}

// fileClass 普通函数没有接收者，以源文件名代替类名
func fileClass(file, pkgPath string) string {
	if file != "" {
		base := filepath.Base(file)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	if i := strings.LastIndexByte(pkgPath, '/'); i >= 0 {
		return pkgPath[i+1:]
	}
	return pkgPath
}
