// Package xpine 根据调用位置生成紧凑、可搜索的日志 tag 与格式化消息。
//
// # 核心流程
//
// 每次日志调用在调用方 goroutine 上同步执行：
//
//	捕获调用帧 → 解析 CallSite → 包名编码为占位符 → 构造 Record
//	→ TagFormatter / MessageFormatter → 占位符解码 → Emitter
//
// # 包名替换规则
//
// 通过 [Builder.AddPackageReplacePattern] 注册 (match, replacement) 规则，
// 注册顺序即优先级：
//
//   - 编码：选择作为包名前缀的最长 match，长度相同时取最早注册的规则，
//     替换为占位符 {$<index>$}
//   - 解码：格式化完成后，将占位符替换为规则的 replacement；
//     找不到对应规则的占位符原样保留
//
// 占位符让自定义 formatter 只看到"带不透明标记的包名"，最终文本替换由引擎完成。
//
// # 默认格式
//
//   - tag：包名按 "." 分段，每段去掉元音（AEIOUY，不区分大小写）；
//     全为元音的段保持原样，占位符段不做处理
//   - message："<Class>, <Method>, <Line> ---> <message>"
//
// 例如 github.com/omeyang/xpine/internal/demo 中 (*Server).handle 的调用，
// 无规则时 tag 为 "gthb.cm.mng.xpn.ntrnl.dm"。
//
// # Go 调用帧映射
//
//   - 包名：调用函数的 import path，"/" 改写为 "."
//   - 类名：方法接收者类型；普通函数取源文件名（去掉 .go）
//   - 方法名：函数或方法名，闭包（.funcN、.N）和方法值（-fm）后缀归并到外层函数
//
// # 错误
//
// 调用栈深度不足时返回 [ErrStackShape]，未经 Builder 构建的 Engine 返回
// [ErrNotConfigured]。两者都直接返回给日志调用方，不做降级猜测。
// 自定义 formatter 中的 panic 不会被拦截。
//
// # 并发
//
// [Engine] 构建后不可变，可在任意 goroutine 并发调用，热路径无锁。
// 需要配置热更新时使用 [Reloader]，它以原子指针整体替换 Engine。
package xpine
