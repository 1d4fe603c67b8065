// Package blockbuf 实现按块增长的内存缓冲区, 读写游标相互独立,
// 支持单层mark/reset, 零拷贝有界视图(Slice), 以及回收已消费块的压缩操作.
// 不做任何线程安全保证, 同一个Buffer及其派生对象必须由调用方串行访问.
package blockbuf

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/lkmio/blockbuf/collections"
	"golang.org/x/text/encoding"
)

// MinBlockSize 单个块的最小容量, New的initialCapacity向上取整到该值
const MinBlockSize = 128

// store 块存储. Buffer独占持有, Slice通过reader共享引用.
// gen在Compact/Clear重构块列表时递增, 用于识别失效的Slice.
type store struct {
	blocks *collections.BlockList
	unit   int
	gen    uint32
}

// Buffer 可增长的块缓冲区. 块容量统一为unit, 写满时追加新块, 永不搬移已有数据.
// 除最后一个块外所有块在写侧都是满的, 读游标始终不超过写游标.
type Buffer struct {
	reader
	st store
	w  cursor
}

// New 创建Buffer, 块容量为initialCapacity向上取整到MinBlockSize,
// 之后追加的块都使用相同容量.
func New(initialCapacity int) *Buffer {
	unit := initialCapacity
	if unit < MinBlockSize {
		unit = MinBlockSize
	}

	b := &Buffer{}
	b.st = store{blocks: collections.NewBlockList(8), unit: unit}
	b.st.blocks.Append(make([]byte, unit))
	b.reader = reader{store: &b.st, limit: &b.w}
	return b
}

// ensure 最后一个块写满时追加新块. 写游标始终指向最后一个块,
// 增长先于写入发生, 游标不需要向前滚动.
func (b *Buffer) ensure() {
	if b.w.off == b.st.unit {
		b.st.blocks.Append(make([]byte, b.st.unit))
		b.w.block++
		b.w.off = 0
	}
}

// WritableBytes 返回最后一个块的剩余空间. 块已写满时先追加新块, 所以不会返回0.
func (b *Buffer) WritableBytes() int {
	b.ensure()
	return b.st.unit - b.w.off
}

// WriteUint8 写入一个字节. 写入总是成功, 增长没有上限.
func (b *Buffer) WriteUint8(v byte) {
	b.ensure()
	b.st.blocks.At(b.w.block)[b.w.off] = v
	b.w.off++
}

func (b *Buffer) WriteInt8(v int8) {
	b.WriteUint8(byte(v))
}

// Write 写入p的全部字节, 返回len(p)
func (b *Buffer) Write(p []byte) int {
	total := len(p)
	for len(p) > 0 {
		b.ensure()
		n := min(len(p), b.st.unit-b.w.off)
		copy(b.st.blocks.At(b.w.block)[b.w.off:], p[:n])
		b.w.off += n
		p = p[n:]
	}

	return total
}

// WriteRange 写入p[offset:offset+length]. offset/length越界时返回
// ErrIndexOutOfRange且不写入任何字节; 参数合法则全部写完, 不存在部分失败.
func (b *Buffer) WriteRange(p []byte, offset, length int) (int, error) {
	if offset < 0 || length < 0 || offset+length > len(p) {
		return 0, fmt.Errorf("%w: offset %d length %d with source size %d", ErrIndexOutOfRange, offset, length, len(p))
	}

	return b.Write(p[offset : offset+length]), nil
}

func (b *Buffer) WriteInt16(v int16) {
	b.WriteUint16(uint16(v))
}

func (b *Buffer) WriteUint16(v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	b.Write(tmp[:])
}

func (b *Buffer) WriteUint24(v uint32) {
	var tmp [3]byte
	putUint24(tmp[:], v)
	b.Write(tmp[:])
}

func (b *Buffer) WriteInt32(v int32) {
	b.WriteUint32(uint32(v))
}

func (b *Buffer) WriteUint32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.Write(tmp[:])
}

func (b *Buffer) WriteInt64(v int64) {
	b.WriteUint64(uint64(v))
}

func (b *Buffer) WriteUint64(v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	b.Write(tmp[:])
}

// WriteFloat32 写入IEEE-754位模式, 大端
func (b *Buffer) WriteFloat32(v float32) {
	b.WriteUint32(math.Float32bits(v))
}

func (b *Buffer) WriteFloat64(v float64) {
	b.WriteUint64(math.Float64bits(v))
}

// WriteChar 写入一个16位大端码元, BMP之外的码点会被截断
func (b *Buffer) WriteChar(c rune) {
	b.WriteUint16(uint16(c))
}

// WriteString 写入s的UTF-8字节, 返回写入的字节数. 不写长度前缀, 由调用方自行处理.
func (b *Buffer) WriteString(s string) int {
	return b.Write([]byte(s))
}

// WriteStringEnc 按指定字符编码写入s, 返回写入的字节数
func (b *Buffer) WriteStringEnc(s string, enc encoding.Encoding) (int, error) {
	encoded, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return 0, err
	}

	return b.Write(encoded), nil
}

// WSkip 写游标在最后一个块内前进n个字节, 从不分配新块.
// n超出块内剩余空间时返回ErrOverflow, 游标不动.
// 与WritableBlock配对使用, 供零拷贝生产方先写数据再跳过.
func (b *Buffer) WSkip(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: skip %d", ErrIndexOutOfRange, n)
	}

	if remaining := b.st.unit - b.w.off; n > remaining {
		return fmt.Errorf("%w: skip %d with %d bytes left in block", ErrOverflow, n, remaining)
	}

	b.w.off += n
	return nil
}

// WritableBlock 返回最后一个块和写游标在块内的偏移, 块已写满时先追加新块.
// 返回值在下一次写入调用前有效, 跨过块边界后之前返回的块引用即过期.
func (b *Buffer) WritableBlock() ([]byte, int) {
	b.ensure()
	return b.st.blocks.At(b.w.block), b.w.off
}

// Slice 从读游标处切出length个字节的只读视图, 与Buffer共享块存储,
// 副作用是本Buffer的读游标前进length. 可读数据不足时返回ErrUnderflow, 游标不动.
func (b *Buffer) Slice(length int) (*Slice, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: length %d", ErrIndexOutOfRange, length)
	}

	if readable := b.ReadableBytes(); readable < length {
		return nil, fmt.Errorf("%w: slice %d with %d bytes readable", ErrUnderflow, length, readable)
	}

	s := &Slice{end: b.pos.advance(length, b.st.unit)}
	s.reader = reader{
		store: &b.st,
		limit: &s.end,
		gen:   b.st.gen,
		pos:   b.pos,
	}

	b.pos = s.end
	return s, nil
}

// Compact 释放读游标所在块之前的所有块, 读写块下标相应前移.
// 不改变可读数据, 但会丢弃已保存的mark(其块下标在重编号后已无意义),
// 并使所有存量Slice失效.
func (b *Buffer) Compact() {
	count := b.pos.block
	if count > b.w.block {
		// 数据恰好在块边界处被消费完, 归一化的读游标指向尚未分配的块
		count = b.w.block
	}

	b.st.blocks.DropFront(count)
	b.pos.block -= count
	b.w.block -= count
	b.marked = false

	b.st.gen++
	b.reader.gen = b.st.gen
}

// Clear 丢弃全部内容, 重置为一个新的空块, 读写游标归零,
// 丢弃已保存的mark并使所有存量Slice失效.
func (b *Buffer) Clear() {
	b.st.blocks.Clear()
	b.st.blocks.Append(make([]byte, b.st.unit))
	b.w = cursor{}
	b.pos = cursor{}
	b.marked = false

	b.st.gen++
	b.reader.gen = b.st.gen
}
