package collections

import "testing"

func TestBlockList(t *testing.T) {
	newBlocks := func(count int) [][]byte {
		blocks := make([][]byte, count)
		for i := range blocks {
			blocks[i] = []byte{byte(i)}
		}
		return blocks
	}

	t.Run("append_at", func(t *testing.T) {
		list := NewBlockList(2)
		if !list.IsEmpty() {
			t.FailNow()
		}

		// 超过初始容量, 触发扩容
		blocks := newBlocks(5)
		for _, block := range blocks {
			list.Append(block)
		}

		if list.Len() != 5 {
			t.FailNow()
		}
		for i, block := range blocks {
			if &list.At(i)[0] != &block[0] {
				t.FailNow()
			}
		}
		if &list.Last()[0] != &blocks[4][0] {
			t.FailNow()
		}
	})

	t.Run("drop_front", func(t *testing.T) {
		list := NewBlockList(4)
		blocks := newBlocks(6)
		for _, block := range blocks {
			list.Append(block)
		}

		list.DropFront(2)
		if list.Len() != 4 {
			t.FailNow()
		}
		// 下标相对于新的头部块
		if &list.At(0)[0] != &blocks[2][0] {
			t.FailNow()
		}

		list.DropFront(4)
		if !list.IsEmpty() {
			t.FailNow()
		}
	})

	t.Run("wrap_around", func(t *testing.T) {
		// 丢弃头部块后尾部回绕, 再触发扩容展平
		list := NewBlockList(4)
		first := newBlocks(3)
		for _, block := range first {
			list.Append(block)
		}
		list.DropFront(2)

		more := newBlocks(4)
		for _, block := range more {
			list.Append(block)
		}

		if list.Len() != 5 {
			t.FailNow()
		}
		if &list.At(0)[0] != &first[2][0] {
			t.FailNow()
		}
		for i, block := range more {
			if &list.At(i+1)[0] != &block[0] {
				t.FailNow()
			}
		}
		if &list.Last()[0] != &more[3][0] {
			t.FailNow()
		}
	})

	t.Run("clear", func(t *testing.T) {
		list := NewBlockList(2)
		for _, block := range newBlocks(3) {
			list.Append(block)
		}

		list.Clear()
		if list.Len() != 0 {
			t.FailNow()
		}

		list.Append([]byte{9})
		if list.At(0)[0] != 9 {
			t.FailNow()
		}
	})
}
