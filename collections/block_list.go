package collections

import (
	"github.com/lkmio/blockbuf/utils"
)

// BlockList 保存Buffer的内存块序列. 环形数组实现, 尾部追加块和丢弃头部块都是O(1),
// 支持按下标随机访问, 下标相对于头部块.
type BlockList struct {
	data [][]byte
	head int
	tail int
	size int
}

func (l *BlockList) IsEmpty() bool {
	return l.size == 0
}

func (l *BlockList) Len() int {
	return l.size
}

// grow 扩容并把块展平到新数组头部
func (l *BlockList) grow() {
	newData := make([][]byte, cap(l.data)*2)
	for i := 0; i < l.size; i++ {
		newData[i] = l.data[(l.head+i)%cap(l.data)]
	}

	l.data = newData
	l.head = 0
	l.tail = l.size
}

// Append 追加尾部块
func (l *BlockList) Append(block []byte) {
	if l.size == cap(l.data) {
		l.grow()
	}

	l.data[l.tail] = block
	l.tail = (l.tail + 1) % cap(l.data)
	l.size++
}

// At 返回第index个块, 从头部块数起
func (l *BlockList) At(index int) []byte {
	utils.Assert(index >= 0 && index < l.size)
	return l.data[(l.head+index)%cap(l.data)]
}

// Last 返回尾部块
func (l *BlockList) Last() []byte {
	utils.Assert(l.size > 0)

	if l.tail > 0 {
		return l.data[l.tail-1]
	}
	return l.data[cap(l.data)-1]
}

// DropFront 丢弃头部count个块, 释放其引用
func (l *BlockList) DropFront(count int) {
	utils.Assert(count >= 0 && count <= l.size)

	for i := 0; i < count; i++ {
		l.data[l.head] = nil
		l.head = (l.head + 1) % cap(l.data)
	}

	l.size -= count
	if l.size == 0 {
		l.head = 0
		l.tail = 0
	}
}

func (l *BlockList) Clear() {
	for i := 0; i < l.size; i++ {
		l.data[(l.head+i)%cap(l.data)] = nil
	}

	l.head = 0
	l.tail = 0
	l.size = 0
}

func NewBlockList(capacity int) *BlockList {
	utils.Assert(capacity > 0)

	return &BlockList{
		data: make([][]byte, capacity),
	}
}
