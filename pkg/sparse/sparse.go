// Copyright © 2024 OpenIM. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sparse

import (
	"fmt"
	"slices"
	"strings"

	"github.com/openimsdk/tools/errs"

	"github.com/openimsdk/cachekit/pkg/util/arrayutil"
)

// DefaultCapacity 是 NewDefault 使用的初始容量
const DefaultCapacity = 10

// slot 是值数组中的一个单元，live为false表示墓碑
type slot[V any] struct {
	value V
	live  bool
}

// IntMap 是以int32为键、按键升序存储的映射
// keys[0:size) 升序且没有重复；slots与keys按下标一一对应，其中可能夹杂墓碑
type IntMap[V any] struct {
	keys    []int32
	slots   []slot[V]
	size    int  // 已占用的单元数，包含墓碑
	garbage bool // size范围内至少存在一个墓碑
}

// New 创建初始容量为initialCapacity的IntMap
// 容量会按 arrayutil.IdealIntArraySize 向上取整；0（或负数）得到长度为0的底层数组
func New[V any](initialCapacity int) *IntMap[V] {
	if initialCapacity <= 0 {
		return &IntMap[V]{keys: []int32{}, slots: []slot[V]{}}
	}
	n := arrayutil.IdealIntArraySize(initialCapacity)
	return &IntMap[V]{
		keys:  make([]int32, n),
		slots: make([]slot[V], n),
	}
}

// NewDefault 创建容量为 DefaultCapacity 的IntMap
func NewDefault[V any]() *IntMap[V] {
	return New[V](DefaultCapacity)
}

// Clone 返回一个拥有独立底层数组的副本
// 值本身只做浅拷贝：指针、切片、map等引用类型的值与原IntMap共享
func (m *IntMap[V]) Clone() *IntMap[V] {
	return &IntMap[V]{
		keys:    slices.Clone(m.keys),
		slots:   slices.Clone(m.slots),
		size:    m.size,
		garbage: m.garbage,
	}
}

// Get 返回key对应的值，key不存在或已被删除时返回零值和false
func (m *IntMap[V]) Get(key int32) (V, bool) {
	r := arrayutil.BinarySearch(m.keys, m.size, key)
	if !r.Found || !m.slots[r.Index].live {
		var zero V
		return zero, false
	}
	return m.slots[r.Index].value, true
}

// GetOr 返回key对应的值，key不存在时返回def
func (m *IntMap[V]) GetOr(key int32, def V) V {
	if v, ok := m.Get(key); ok {
		return v
	}
	return def
}

// Delete 删除key对应的映射，只标记墓碑，不移动元素
func (m *IntMap[V]) Delete(key int32) {
	r := arrayutil.BinarySearch(m.keys, m.size, key)
	if r.Found {
		m.tombstone(r.Index)
	}
}

// Remove 是 Delete 的别名
func (m *IntMap[V]) Remove(key int32) {
	m.Delete(key)
}

// RemoveAt 删除第index个映射，index的含义与 KeyAt 相同
//
// 调用前会先回收墓碑，index按存活映射计数，取值范围为[0, Size())。
// 在 Delete 之前通过 IndexOfKey 或 KeyAt 得到的下标，Delete 之后可能指向别的映射或越界，
// 需要重新调用 IndexOfKey 获取。
func (m *IntMap[V]) RemoveAt(index int) {
	m.compact()
	m.checkIndex(index)
	m.tombstone(index)
}

// RemoveAtRange 删除从index开始的count个映射，超出 Size 的部分被忽略
// 与 RemoveAt 一样先回收墓碑再按下标删除
func (m *IntMap[V]) RemoveAtRange(index, count int) {
	m.compact()
	if index < 0 || index > m.size {
		panic(errs.ErrArgs.WrapMsg("index out of range", "index", index, "size", m.size))
	}
	end := min(m.size, index+count)
	for i := index; i < end; i++ {
		m.tombstone(i)
	}
}

func (m *IntMap[V]) tombstone(i int) {
	if m.slots[i].live {
		m.slots[i] = slot[V]{}
		m.garbage = true
	}
}

// compact 把存活的单元依次前移，填满墓碑留下的空位
func (m *IntMap[V]) compact() {
	if !m.garbage {
		return
	}
	o := 0
	for i := 0; i < m.size; i++ {
		s := m.slots[i]
		if !s.live {
			continue
		}
		if i != o {
			m.keys[o] = m.keys[i]
			m.slots[o] = s
		}
		o++
	}
	// 释放尾部单元对值的引用
	clear(m.slots[o:m.size])
	m.size = o
	m.garbage = false
}

// grow 把底层数组扩到n个单元
func (m *IntMap[V]) grow(n int) {
	keys := make([]int32, n)
	slots := make([]slot[V], n)
	copy(keys, m.keys)
	copy(slots, m.slots)
	m.keys, m.slots = keys, slots
}

// Put 写入key到value的映射，已存在时覆盖原值
func (m *IntMap[V]) Put(key int32, value V) {
	r := arrayutil.BinarySearch(m.keys, m.size, key)
	if r.Found {
		m.slots[r.Index] = slot[V]{value: value, live: true}
		return
	}

	i := r.Index
	// 插入位置恰好是墓碑，直接复用
	if i < m.size && !m.slots[i].live {
		m.keys[i] = key
		m.slots[i] = slot[V]{value: value, live: true}
		return
	}

	if m.garbage && m.size >= len(m.keys) {
		m.compact()
		// 压缩后下标已经变化，需要重新查找
		i = arrayutil.BinarySearch(m.keys, m.size, key).Index
	}

	if m.size >= len(m.keys) {
		m.grow(m.size + 1)
	}

	if i < m.size {
		copy(m.keys[i+1:m.size+1], m.keys[i:m.size])
		copy(m.slots[i+1:m.size+1], m.slots[i:m.size])
	}
	m.keys[i] = key
	m.slots[i] = slot[V]{value: value, live: true}
	m.size++
}

// Append 写入一个映射，针对key大于现有所有key的批量装载场景
// key不大于最后一个已占用单元的key时退化为 Put
func (m *IntMap[V]) Append(key int32, value V) {
	if m.size != 0 && key <= m.keys[m.size-1] {
		m.Put(key, value)
		return
	}

	if m.garbage && m.size >= len(m.keys) {
		m.compact()
	}

	pos := m.size
	if pos >= len(m.keys) {
		m.grow(arrayutil.IdealIntArraySize(pos + 1))
	}
	m.keys[pos] = key
	m.slots[pos] = slot[V]{value: value, live: true}
	m.size = pos + 1
}

// Size 返回映射数量，调用前会先回收墓碑
func (m *IntMap[V]) Size() int {
	m.compact()
	return m.size
}

// Cap 返回底层数组的长度
func (m *IntMap[V]) Cap() int {
	return len(m.keys)
}

func (m *IntMap[V]) checkIndex(index int) {
	if index < 0 || index >= m.size {
		panic(errs.ErrArgs.WrapMsg("index out of range", "index", index, "size", m.size))
	}
}

// KeyAt 返回第index个映射的key，index取值范围为[0, Size())
// 下标按key升序排列：KeyAt(0)是最小的key
func (m *IntMap[V]) KeyAt(index int) int32 {
	m.compact()
	m.checkIndex(index)
	return m.keys[index]
}

// ValueAt 返回第index个映射的值，index取值范围为[0, Size())
func (m *IntMap[V]) ValueAt(index int) V {
	m.compact()
	m.checkIndex(index)
	return m.slots[index].value
}

// SetValueAt 替换第index个映射的值，index取值范围为[0, Size())
func (m *IntMap[V]) SetValueAt(index int, value V) {
	m.compact()
	m.checkIndex(index)
	m.slots[index].value = value
}

// IndexOfKey 返回key所在的下标；key不存在时Found为false，Index为插入位置
// 下标只在下一次 Delete 之前有效
func (m *IntMap[V]) IndexOfKey(key int32) arrayutil.SearchResult {
	m.compact()
	return arrayutil.BinarySearch(m.keys, m.size, key)
}

// IndexOfValueFunc 线性查找第一个满足match的值的下标，没有时返回-1
func (m *IntMap[V]) IndexOfValueFunc(match func(V) bool) int {
	m.compact()
	for i := 0; i < m.size; i++ {
		if match(m.slots[i].value) {
			return i
		}
	}
	return -1
}

// IndexOfValue 线性查找值等于value的第一个下标，没有时返回-1
//
// 比较使用 ==：V是指针类型时比较的是引用本身而不是指向的内容，
// 多个key映射到同一个值时只返回最小key的下标。
func IndexOfValue[V comparable](m *IntMap[V], value V) int {
	return m.IndexOfValueFunc(func(v V) bool {
		return v == value
	})
}

// Range 按key升序遍历所有映射，fn返回false时停止
// 遍历期间不能修改IntMap
func (m *IntMap[V]) Range(fn func(key int32, value V) bool) {
	for i := 0; i < m.size; i++ {
		if !m.slots[i].live {
			continue
		}
		if !fn(m.keys[i], m.slots[i].value) {
			return
		}
	}
}

// Clear 删除所有映射，底层数组的容量保持不变
func (m *IntMap[V]) Clear() {
	clear(m.slots[:m.size])
	m.size = 0
	m.garbage = false
}

// String 返回形如 {1=a, 3=b} 的字符串
func (m *IntMap[V]) String() string {
	if m.Size() == 0 {
		return "{}"
	}
	var b strings.Builder
	b.Grow(m.size * 28)
	b.WriteByte('{')
	for i := 0; i < m.size; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d=%v", m.keys[i], m.slots[i].value)
	}
	b.WriteByte('}')
	return b.String()
}
