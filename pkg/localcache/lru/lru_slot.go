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

package lru

import "github.com/openimsdk/tools/errs"

// NewSlotLRU 创建分槽LRU缓存
// 通过hash把key分散到slotNum个独立的LRU实例中，每个槽位各自加锁，以减少锁竞争。
// 淘汰顺序只在单个槽位内部成立，不同槽位之间互不影响。
func NewSlotLRU[K comparable, V any](slotNum int, hash func(K) uint64, create func() (LRU[K, V], error)) (LRU[K, V], error) {
	if slotNum <= 0 {
		return nil, errs.ErrArgs.WrapMsg("slotNum must be greater than 0", "slotNum", slotNum)
	}
	if hash == nil {
		return nil, errs.ErrArgs.WrapMsg("hash should not be nil")
	}
	x := &slotLRU[K, V]{
		n:     uint64(slotNum),
		slots: make([]LRU[K, V], slotNum),
		hash:  hash,
	}
	for i := 0; i < slotNum; i++ {
		slot, err := create()
		if err != nil {
			return nil, err
		}
		x.slots[i] = slot
	}
	return x, nil
}

type slotLRU[K comparable, V any] struct {
	n     uint64
	slots []LRU[K, V]
	hash  func(k K) uint64
}

func (x *slotLRU[K, V]) getIndex(k K) uint64 {
	return x.hash(k) % x.n
}

// 先检查nil，避免把nil传给hash
func (x *slotLRU[K, V]) Get(key K) (V, bool, error) {
	if isNil(key) {
		var zero V
		return zero, false, ErrNilKey
	}
	return x.slots[x.getIndex(key)].Get(key)
}

func (x *slotLRU[K, V]) Put(key K, value V) (V, bool, error) {
	if isNil(key) {
		var zero V
		return zero, false, ErrNilKey
	}
	return x.slots[x.getIndex(key)].Put(key, value)
}

func (x *slotLRU[K, V]) Remove(key K) (V, bool, error) {
	if isNil(key) {
		var zero V
		return zero, false, ErrNilKey
	}
	return x.slots[x.getIndex(key)].Remove(key)
}

// Clear 依次清空每个槽位，不同槽位的清空不是原子的
func (x *slotLRU[K, V]) Clear() {
	for _, slot := range x.slots {
		slot.Clear()
	}
}

func (x *slotLRU[K, V]) Len() int {
	var n int
	for _, slot := range x.slots {
		n += slot.Len()
	}
	return n
}

func (x *slotLRU[K, V]) Size() int {
	var n int
	for _, slot := range x.slots {
		n += slot.Size()
	}
	return n
}
