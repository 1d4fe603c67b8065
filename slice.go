package blockbuf

// Slice Buffer上的有界零拷贝只读视图, 由Buffer.Slice创建.
// 与父Buffer共享块存储, 持有独立的读游标和单层mark, 读取上界在创建时固定,
// 不受父Buffer后续写入影响. 不提供写操作, 也不支持再切出嵌套视图.
//
// 父Buffer执行Compact/Clear会重构块列表, 此后本视图失效:
// 带错误返回的操作返回ErrInvalidated, Read/ReadBytes按无数据处理返回-1.
type Slice struct {
	reader
	end cursor
}
