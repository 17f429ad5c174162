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

package link

import (
	"sync"

	"github.com/openimsdk/tools/errs"
)

// Link 管理key之间的关联关系
// 关联是双向且可传递的：删除任一key时，与它直接或间接关联的key会一并返回
type Link[K comparable] interface {
	// Link 建立key与link中每个key的双向关联
	Link(key K, link ...K)

	// Del 删除key及其直接或间接关联的全部关联关系
	// 返回值包含key自身
	Del(key K) map[K]struct{}

	// Clear 删除全部关联关系
	Clear()
}

func newLinkKey[K comparable]() *linkKey[K] {
	return &linkKey[K]{
		data: make(map[K]map[K]struct{}),
	}
}

type linkKey[K comparable] struct {
	lock sync.Mutex
	data map[K]map[K]struct{}
}

func (x *linkKey[K]) link(key K, link ...K) {
	x.lock.Lock()
	defer x.lock.Unlock()
	v, ok := x.data[key]
	if !ok {
		v = make(map[K]struct{})
		x.data[key] = v
	}
	for _, k := range link {
		v[k] = struct{}{}
	}
}

func (x *linkKey[K]) del(key K) map[K]struct{} {
	x.lock.Lock()
	defer x.lock.Unlock()
	ks, ok := x.data[key]
	if !ok {
		return nil
	}
	delete(x.data, key)
	return ks
}

func (x *linkKey[K]) clear() {
	x.lock.Lock()
	defer x.lock.Unlock()
	clear(x.data)
}

// New 创建分片数为n的Link，hash用于把key映射到分片
func New[K comparable](n int, hash func(K) uint64) (Link[K], error) {
	if n <= 0 {
		return nil, errs.ErrArgs.WrapMsg("link slot num must be greater than 0", "n", n)
	}
	if hash == nil {
		return nil, errs.ErrArgs.WrapMsg("link hash should not be nil")
	}
	slots := make([]*linkKey[K], n)
	for i := 0; i < len(slots); i++ {
		slots[i] = newLinkKey[K]()
	}
	return &slot[K]{
		n:     uint64(n),
		slots: slots,
		hash:  hash,
	}, nil
}

type slot[K comparable] struct {
	n     uint64
	slots []*linkKey[K]
	hash  func(K) uint64
}

func (x *slot[K]) index(k K) uint64 {
	return x.hash(k) % x.n
}

func (x *slot[K]) Link(key K, link ...K) {
	if len(link) == 0 {
		return
	}
	x.slots[x.index(key)].link(key, link...)
	for _, lk := range link {
		x.slots[x.index(lk)].link(lk, key)
	}
}

func (x *slot[K]) Del(key K) map[K]struct{} {
	del := make(map[K]struct{})
	stack := []K{key}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := del[curr]; ok {
			continue
		}
		del[curr] = struct{}{}
		for ck := range x.slots[x.index(curr)].del(curr) {
			stack = append(stack, ck)
		}
	}
	return del
}

func (x *slot[K]) Clear() {
	for _, s := range x.slots {
		s.clear()
	}
}
