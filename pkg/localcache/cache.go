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

package localcache

import (
	"github.com/openimsdk/tools/errs"

	"github.com/openimsdk/cachekit/pkg/localcache/link"
	"github.com/openimsdk/cachekit/pkg/localcache/lru"
)

// Cache 定义了缓存的通用接口
//   - Put 返回被替换的旧值，Remove 返回被删除的值，第二个返回值表示旧值是否存在
//   - Get 除了LRU的访问顺序之外没有其他副作用
//   - Clear 之后缓存为空，对空缓存调用 Clear 是安全的
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool, error)
	Put(key K, value V) (V, bool, error)
	Remove(key K) (V, bool, error)
	Clear()
}

var (
	_ Cache[string, any] = (*lru.BoundedLRU[string, any])(nil)
	_ Cache[string, any] = (*LocalCache[string, any])(nil)
)

// New 根据选项创建本地缓存
// slotNum为1时使用单个 lru.BoundedLRU；大于1时使用分槽LRU，每个槽位的容量为 maxSize/slotNum（至少为1）
func New[K comparable, V any](opts ...Option[K, V]) (*LocalCache[K, V], error) {
	opt := defaultOption[K, V]()
	for _, o := range opts {
		o(opt)
	}
	if opt.hash == nil {
		opt.hash = defaultHash[K]()
	}
	if opt.hash == nil && (opt.slotNum > 1 || opt.linkSlotNum > 0) {
		return nil, errs.ErrArgs.WrapMsg("hash is required when slotNum > 1 or link is enabled",
			"slotNum", opt.slotNum, "linkSlotNum", opt.linkSlotNum)
	}

	c := &LocalCache[K, V]{opt: opt}
	if opt.linkSlotNum > 0 {
		l, err := link.New[K](opt.linkSlotNum, opt.hash)
		if err != nil {
			return nil, err
		}
		c.link = l
	}

	createBounded := func(maxSize int) func() (lru.LRU[K, V], error) {
		return func() (lru.LRU[K, V], error) {
			l, err := lru.NewBoundedLRU[K, V](maxSize,
				lru.WithSizeOf(opt.sizeOf),
				lru.WithTarget[K, V](opt.target),
				lru.WithOnEvict[K, V](c.onEvict),
			)
			if err != nil {
				return nil, err
			}
			return l, nil
		}
	}

	var err error
	if opt.slotNum <= 1 {
		c.local, err = createBounded(opt.maxSize)()
	} else {
		c.local, err = lru.NewSlotLRU[K, V](opt.slotNum, opt.hash, createBounded(max(1, opt.maxSize/opt.slotNum)))
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// LocalCache 是 Cache 的实现，在LRU之上增加了key的关联删除
type LocalCache[K comparable, V any] struct {
	opt   *option[K, V]
	link  link.Link[K]
	local lru.LRU[K, V]
}

// onEvict 缓存项被淘汰时，同时删除与之关联的缓存项
func (c *LocalCache[K, V]) onEvict(key K, value V) {
	c.unlink(key)
	if c.opt.onEvict != nil {
		c.opt.onEvict(key, value)
	}
}

func (c *LocalCache[K, V]) unlink(key K) {
	if c.link == nil {
		return
	}
	for k := range c.link.Del(key) {
		if k != key {
			_, _, _ = c.local.Remove(k)
		}
	}
}

// Link 建立key与links的关联，之后删除或淘汰其中任一key时其余key也会被删除
// 未启用关联功能时不做任何操作
func (c *LocalCache[K, V]) Link(key K, links ...K) {
	if c.link != nil {
		c.link.Link(key, links...)
	}
}

func (c *LocalCache[K, V]) Get(key K) (V, bool, error) {
	return c.local.Get(key)
}

func (c *LocalCache[K, V]) Put(key K, value V) (V, bool, error) {
	return c.local.Put(key, value)
}

// Remove 先调用 WithDeleteKeyBefore 注册的回调，再删除本地缓存及其关联的缓存项
func (c *LocalCache[K, V]) Remove(key K) (V, bool, error) {
	for _, fn := range c.opt.delFn {
		fn(key)
	}
	prev, ok, err := c.local.Remove(key)
	if err != nil {
		return prev, false, err
	}
	c.unlink(key)
	return prev, ok, nil
}

// Clear 清空缓存和全部关联关系
func (c *LocalCache[K, V]) Clear() {
	c.local.Clear()
	if c.link != nil {
		c.link.Clear()
	}
}

func (c *LocalCache[K, V]) Len() int {
	return c.local.Len()
}

func (c *LocalCache[K, V]) Size() int {
	return c.local.Size()
}
