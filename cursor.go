package blockbuf

// cursor 读写游标, 由块下标和块内偏移组成. 所有块容量相同(unit),
// 跨块的前进和距离计算因此都是纯算术, 不用逐块遍历.
type cursor struct {
	block int
	off   int
}

// advance 前进n个字节, 结果归一化(off < unit).
// 恰好落在块边界时归一化到下一个块的0偏移, 该块可能尚未分配,
// 此时游标只作为边界值使用, 由distance保证不会越界访问.
func (c cursor) advance(n, unit int) cursor {
	off := c.off + n
	return cursor{
		block: c.block + off/unit,
		off:   off % unit,
	}
}

// distance 返回到other的字节距离, other不能在c之前.
func (c cursor) distance(other cursor, unit int) int {
	return (other.block-c.block)*unit + other.off - c.off
}
