package blockbuf

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding"
)

// reader 读端状态机, Buffer和Slice内嵌同一实现, 对外暴露同一套读取契约.
// limit指向读取上界: Buffer的写游标, 或Slice创建时固定的结束位置.
// gen是创建时记录的存储代数, 与store当前代数不一致说明块列表已被重构.
type reader struct {
	store  *store
	limit  *cursor
	gen    uint32
	pos    cursor
	mark   cursor
	marked bool
}

func (r *reader) valid() bool {
	return r.gen == r.store.gen
}

func (r *reader) IsReadable() bool {
	return r.ReadableBytes() > 0
}

// ReadableBytes 返回剩余可读字节数, 视图失效后返回0
func (r *reader) ReadableBytes() int {
	if !r.valid() {
		return 0
	}

	return r.pos.distance(*r.limit, r.store.unit)
}

// Read 读取并消费一个字节, 返回0~255; 无可读数据时返回-1, 不会失败
func (r *reader) Read() int {
	if r.ReadableBytes() == 0 {
		return -1
	}

	b := r.store.blocks.At(r.pos.block)[r.pos.off]
	r.pos = r.pos.advance(1, r.store.unit)
	return int(b)
}

// ReadBytes 尽力填充p, 返回实际读取的字节数; p为空返回0, 无可读数据返回-1.
// 可读数据不足时读完即止, 不报错, 调用方必须检查返回值.
func (r *reader) ReadBytes(p []byte) int {
	if len(p) == 0 {
		return 0
	}

	n := r.ReadableBytes()
	if n == 0 {
		return -1
	}

	if n > len(p) {
		n = len(p)
	}
	r.readFull(p[:n])
	return n
}

// ReadBytesRange 读取语义同ReadBytes, 目标范围为p[offset:offset+length].
// offset/length越界时返回ErrIndexOutOfRange, 不消费任何数据.
func (r *reader) ReadBytesRange(p []byte, offset, length int) (int, error) {
	if offset < 0 || length < 0 || offset+length > len(p) {
		return 0, fmt.Errorf("%w: offset %d length %d with destination size %d", ErrIndexOutOfRange, offset, length, len(p))
	}

	return r.ReadBytes(p[offset : offset+length]), nil
}

// take 消费恰好len(p)个字节. 可读数据不足时返回ErrUnderflow且不消费任何数据.
func (r *reader) take(p []byte) error {
	if !r.valid() {
		return ErrInvalidated
	}

	if n := r.ReadableBytes(); n < len(p) {
		return fmt.Errorf("%w: need %d bytes, %d readable", ErrUnderflow, len(p), n)
	}

	r.readFull(p)
	return nil
}

// readFull 逐块拷贝len(p)个字节, 调用前必须已确认可读数据充足
func (r *reader) readFull(p []byte) {
	unit := r.store.unit
	for len(p) > 0 {
		end := unit
		if r.pos.block == r.limit.block {
			end = r.limit.off
		}

		n := min(len(p), end-r.pos.off)
		copy(p[:n], r.store.blocks.At(r.pos.block)[r.pos.off:r.pos.off+n])
		p = p[n:]
		r.pos = r.pos.advance(n, unit)
	}
}

func (r *reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

func (r *reader) ReadUint8() (byte, error) {
	var tmp [1]byte
	if err := r.take(tmp[:]); err != nil {
		return 0, err
	}

	return tmp[0], nil
}

func (r *reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *reader) ReadUint16() (uint16, error) {
	var tmp [2]byte
	if err := r.take(tmp[:]); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(tmp[:]), nil
}

func (r *reader) ReadUint24() (uint32, error) {
	var tmp [3]byte
	if err := r.take(tmp[:]); err != nil {
		return 0, err
	}

	return uint24(tmp[:]), nil
}

func (r *reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *reader) ReadUint32() (uint32, error) {
	var tmp [4]byte
	if err := r.take(tmp[:]); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(tmp[:]), nil
}

func (r *reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

func (r *reader) ReadUint64() (uint64, error) {
	var tmp [8]byte
	if err := r.take(tmp[:]); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(tmp[:]), nil
}

func (r *reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

func (r *reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadChar 读取一个16位大端码元
func (r *reader) ReadChar() (rune, error) {
	v, err := r.ReadUint16()
	return rune(v), err
}

// ReadString 消费length个字节并按UTF-8解码.
// 可读数据不足length时返回ErrUnderflow, 不消费任何数据.
func (r *reader) ReadString(length int) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("%w: length %d", ErrIndexOutOfRange, length)
	}

	b := make([]byte, length)
	if err := r.take(b); err != nil {
		return "", err
	}

	return string(b), nil
}

// ReadStringEnc 消费length个字节并按指定字符编码解码
func (r *reader) ReadStringEnc(length int, enc encoding.Encoding) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("%w: length %d", ErrIndexOutOfRange, length)
	}

	b := make([]byte, length)
	if err := r.take(b); err != nil {
		return "", err
	}

	decoded, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// RSkip 读游标前进n个字节, 可以跨越任意多个块边界.
// n超出可读数据量时返回ErrUnderflow, 游标不动.
func (r *reader) RSkip(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: skip %d", ErrIndexOutOfRange, n)
	}

	if !r.valid() {
		return ErrInvalidated
	}

	if readable := r.ReadableBytes(); readable < n {
		return fmt.Errorf("%w: skip %d with %d bytes readable", ErrUnderflow, n, readable)
	}

	r.pos = r.pos.advance(n, r.store.unit)
	return nil
}

// Mark 保存当前读游标, 覆盖之前保存的位置. 只保留一层.
func (r *reader) Mark() {
	r.mark = r.pos
	r.marked = true
}

// Reset 恢复到Mark保存的读游标, 没有保存过则什么都不做
func (r *reader) Reset() {
	if r.marked {
		r.pos = r.mark
	}
}

// ReadableBlock 返回读游标所在块和块内偏移, 供零拷贝消费方直接读取后调用RSkip.
// 返回值在下一次读取/跳过调用前有效. 无可读数据时返回nil.
func (r *reader) ReadableBlock() ([]byte, int) {
	if r.ReadableBytes() == 0 {
		return nil, 0
	}

	return r.store.blocks.At(r.pos.block), r.pos.off
}

func uint24(data []byte) uint32 {
	return (uint32(data[0]) << 16) | (uint32(data[1]) << 8) | uint32(data[2])
}

func putUint24(dst []byte, src uint32) {
	dst[0] = byte(src >> 16)
	dst[1] = byte(src >> 8)
	dst[2] = byte(src)
}
