package blockbuf

import "io"

// ByteSource 单字节读取原语, 无数据时返回-1. Buffer和Slice均实现.
type ByteSource interface {
	Read() int
}

// ByteSink 单字节写入原语. Buffer实现.
type ByteSink interface {
	WriteUint8(v byte)
}

// StreamReader 把ByteSource适配成io.Reader/io.ByteReader的纯代理.
// 自身不持有任何状态, 读取直接推进底层缓冲区的读游标, -1映射为io.EOF.
type StreamReader struct {
	src ByteSource
}

func NewStreamReader(src ByteSource) *StreamReader {
	return &StreamReader{src: src}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	n := 0
	for n < len(p) {
		v := r.src.Read()
		if v < 0 {
			break
		}

		p[n] = byte(v)
		n++
	}

	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (r *StreamReader) ReadByte() (byte, error) {
	v := r.src.Read()
	if v < 0 {
		return 0, io.EOF
	}

	return byte(v), nil
}

// StreamWriter 把ByteSink适配成io.Writer/io.ByteWriter的纯代理.
// 底层缓冲区增长没有上限, 写入不会失败.
type StreamWriter struct {
	dst ByteSink
}

func NewStreamWriter(dst ByteSink) *StreamWriter {
	return &StreamWriter{dst: dst}
}

func (w *StreamWriter) Write(p []byte) (int, error) {
	for _, v := range p {
		w.dst.WriteUint8(v)
	}

	return len(p), nil
}

func (w *StreamWriter) WriteByte(v byte) error {
	w.dst.WriteUint8(v)
	return nil
}
