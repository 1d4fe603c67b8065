package blockbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlice(t *testing.T) {
	t.Run("zero_copy_hand_off", func(t *testing.T) {
		buf := New(128)
		src := make([]byte, 200)
		for i := range src {
			src[i] = byte(i)
		}
		buf.Write(src)

		require.NoError(t, buf.RSkip(10))

		s, err := buf.Slice(50)
		require.NoError(t, err)

		// 父Buffer的读游标作为副作用前进了50
		assert.Equal(t, 140, buf.ReadableBytes())
		assert.Equal(t, 60, buf.Read())

		// 切片恰好产出创建时读游标处的那50个字节
		assert.Equal(t, 50, s.ReadableBytes())
		dst := make([]byte, 50)
		assert.Equal(t, 50, s.ReadBytes(dst))
		assert.Equal(t, src[10:60], dst)

		// 读完后不影响父Buffer
		assert.Equal(t, -1, s.Read())
		assert.Equal(t, 139, buf.ReadableBytes())
	})

	t.Run("across_block_boundary", func(t *testing.T) {
		buf := New(128)
		src := make([]byte, 300)
		for i := range src {
			src[i] = byte(i % 256)
		}
		buf.Write(src)
		require.NoError(t, buf.RSkip(100))

		s, err := buf.Slice(60)
		require.NoError(t, err)

		dst := make([]byte, 60)
		assert.Equal(t, 60, s.ReadBytes(dst))
		assert.Equal(t, src[100:160], dst)
	})

	t.Run("fixed_width_reads", func(t *testing.T) {
		buf := New(128)
		buf.WriteUint32(0xCAFEBABE)
		buf.WriteUint16(0x1234)

		s, err := buf.Slice(6)
		require.NoError(t, err)

		v32, err := s.ReadUint32()
		require.NoError(t, err)
		assert.Equal(t, uint32(0xCAFEBABE), v32)

		v16, err := s.ReadUint16()
		require.NoError(t, err)
		assert.Equal(t, uint16(0x1234), v16)
	})

	t.Run("bounded", func(t *testing.T) {
		buf := New(128)
		buf.Write(make([]byte, 64))

		s, err := buf.Slice(3)
		require.NoError(t, err)

		// 上界由创建长度决定, 与父Buffer剩余数据无关
		_, err = s.ReadUint32()
		assert.ErrorIs(t, err, ErrUnderflow)
		assert.Equal(t, 3, s.ReadableBytes())

		assert.ErrorIs(t, s.RSkip(4), ErrUnderflow)
		require.NoError(t, s.RSkip(3))
		assert.False(t, s.IsReadable())
	})

	t.Run("underflow", func(t *testing.T) {
		buf := New(128)
		buf.Write([]byte{1, 2, 3})

		_, err := buf.Slice(4)
		assert.ErrorIs(t, err, ErrUnderflow)
		// 失败时父游标不动
		assert.Equal(t, 3, buf.ReadableBytes())
	})

	t.Run("mark_reset", func(t *testing.T) {
		buf := New(128)
		buf.Write([]byte{1, 2, 3, 4, 5})

		s, err := buf.Slice(5)
		require.NoError(t, err)

		assert.Equal(t, 1, s.Read())
		s.Mark()
		assert.Equal(t, 2, s.Read())
		assert.Equal(t, 3, s.Read())
		s.Reset()
		assert.Equal(t, 2, s.Read())

		// 切片的mark独立于父Buffer
		buf.Write([]byte{9})
		buf.Reset()
		assert.Equal(t, 9, buf.Read())
	})

	t.Run("new_writes_not_visible", func(t *testing.T) {
		buf := New(128)
		buf.Write([]byte{1, 2})

		s, err := buf.Slice(2)
		require.NoError(t, err)

		buf.Write([]byte{3, 4})
		assert.Equal(t, 2, s.ReadableBytes())
	})
}

func TestSliceInvalidated(t *testing.T) {
	t.Run("compact", func(t *testing.T) {
		buf := New(128)
		buf.Write(make([]byte, 300))
		require.NoError(t, buf.RSkip(10))

		s, err := buf.Slice(20)
		require.NoError(t, err)
		require.NoError(t, buf.RSkip(150))

		buf.Compact()

		assert.False(t, s.IsReadable())
		assert.Equal(t, 0, s.ReadableBytes())
		assert.Equal(t, -1, s.Read())
		assert.Equal(t, -1, s.ReadBytes(make([]byte, 4)))

		_, err = s.ReadUint8()
		assert.ErrorIs(t, err, ErrInvalidated)
		_, err = s.ReadString(1)
		assert.ErrorIs(t, err, ErrInvalidated)
		assert.ErrorIs(t, s.RSkip(1), ErrInvalidated)

		block, _ := s.ReadableBlock()
		assert.Nil(t, block)
	})

	t.Run("clear", func(t *testing.T) {
		buf := New(128)
		buf.Write([]byte{1, 2, 3, 4})

		s, err := buf.Slice(4)
		require.NoError(t, err)

		buf.Clear()
		_, err = s.ReadUint32()
		assert.ErrorIs(t, err, ErrInvalidated)
	})

	t.Run("parent_stays_valid", func(t *testing.T) {
		buf := New(128)
		buf.Write([]byte{1, 2, 3, 4})

		_, err := buf.Slice(2)
		require.NoError(t, err)

		buf.Compact()
		assert.Equal(t, 2, buf.ReadableBytes())
		assert.Equal(t, 3, buf.Read())
	})
}
