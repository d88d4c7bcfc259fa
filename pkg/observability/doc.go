// Package observability 汇集日志相关的子包。
//
//   - xpine: 按调用位置生成日志 tag 与消息的引擎
//   - xlog: 基于 log/slog 的结构化输出，xpine 的默认输出端
//   - xrotate: 按大小轮转的日志文件
package observability
