// Package xlog 是 xpine 的结构化输出端，基于 log/slog。
//
// xpine 通过 LoggerEmitter 写入时，格式化后的消息成为记录消息，
// tag 成为 "tag" 属性，日志调用携带的 error 成为 "error" 属性：
//
//	time=... level=ERROR msg="Conn, Serve, 12 ---> closed" tag=cm.gthb.srvr error=eof
//
// Builder 的第一个配置错误会在 Build 时返回：
//
//	logger, cleanup, err := xlog.New().
//		SetFormat("json").
//		SetLevelString("debug").
//		SetRotation("/var/log/app/pine.log", xrotate.WithMaxSize(100)).
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// 级别名称除 debug/info/warn/error 外也接受 verbose、assert 及单字母写法，
// Level 实现了 TextMarshaler，可直接出现在配置文件中。
package xlog
