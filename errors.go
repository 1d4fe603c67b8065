package blockbuf

import "errors"

var (
	// ErrIndexOutOfRange 批量读写的offset/length参数越界, 属调用方编码错误
	ErrIndexOutOfRange = errors.New("blockbuf: index out of range")

	// ErrUnderflow 定长读取/跳过/切片请求超出当前可读数据量, 调用方可等待更多写入后重试
	ErrUnderflow = errors.New("blockbuf: buffer underflow")

	// ErrOverflow WSkip请求超出最后一个块的剩余空间
	ErrOverflow = errors.New("blockbuf: buffer overflow")

	// ErrInvalidated 父Buffer经Compact/Clear重构块列表后, Slice不再有效
	ErrInvalidated = errors.New("blockbuf: slice invalidated")
)
