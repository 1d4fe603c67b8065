package utils

import (
	"fmt"
	"runtime"
)

// Assert 断言内部不变量成立, 失败时携带调用处的文件和行号panic.
func Assert(b bool) {
	if !b {
		// 只取最近的一个调用栈帧
		ptrs := make([]uintptr, 1)
		// 跳过Assert和Callers函数
		callers := runtime.Callers(2, ptrs)
		frames := runtime.CallersFrames(ptrs[:callers])
		frame, _ := frames.Next()
		panic(fmt.Sprintf("assertion failed, file %s, line: %d", frame.File, frame.Line))
	}
}
