// Package xrotate 为 xpine 的文件输出提供按大小轮转的日志文件。
//
// [Open] 返回的 [File] 并发安全，xlog.Builder.SetRotation 与
// xpine.NewFileEmitter 都通过它落盘。轮转由 lumberjack v2 完成：
// 当前文件超过 MaxSizeMB 时被重命名为带时间戳的备份，
// 备份按 MaxBackups 与 MaxAgeDays 清理，可选 gzip 压缩。
//
//	f, err := xrotate.Open("/var/log/app/pine.log", xrotate.WithMaxSize(50))
//	if err != nil {
//		return err
//	}
//	defer f.Close()
package xrotate
