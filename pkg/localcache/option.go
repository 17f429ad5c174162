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
	"github.com/openimsdk/cachekit/pkg/localcache/lru"
)

// DefaultMaxSize 默认的总容量
// 单位由 SizeOf 决定，不随进程内存变化；按内存限制容量时用 WithMaxSize 显式设置
const DefaultMaxSize = 1024

func defaultOption[K comparable, V any]() *option[K, V] {
	return &option[K, V]{
		maxSize: DefaultMaxSize,
		slotNum: 1,
		sizeOf:  func(K, V) int { return 1 },
		delFn:   make([]func(key K), 0, 2),
		target:  lru.EmptyTarget{},
	}
}

type option[K comparable, V any] struct {
	maxSize     int // 所有槽位容量之和
	slotNum     int // LRU槽位数量，1表示不分槽
	linkSlotNum int // 关联关系的分片数量，0表示禁用关联功能

	sizeOf  lru.SizeFunc[K, V]
	hash    func(K) uint64
	onEvict lru.EvictCallback[K, V]

	// delFn 在 Cache.Remove 删除本地缓存之前按顺序调用
	delFn []func(key K)

	target lru.Target
}

// Option 配置本地缓存
type Option[K comparable, V any] func(o *option[K, V])

// WithMaxSize 设置总容量，必须大于0
func WithMaxSize[K comparable, V any](maxSize int) Option[K, V] {
	return func(o *option[K, V]) {
		o.maxSize = maxSize
	}
}

// WithSizeOf 设置缓存项的容量计算函数
func WithSizeOf[K comparable, V any](fn lru.SizeFunc[K, V]) Option[K, V] {
	if fn == nil {
		panic("sizeOf should not be nil")
	}
	return func(o *option[K, V]) {
		o.sizeOf = fn
	}
}

// WithSlotNum 设置LRU槽位数量，越多锁竞争越小，但淘汰顺序只在槽位内成立
func WithSlotNum[K comparable, V any](slotNum int) Option[K, V] {
	return func(o *option[K, V]) {
		o.slotNum = slotNum
	}
}

// WithLinkSlotNum 设置关联关系的分片数量，0表示禁用
func WithLinkSlotNum[K comparable, V any](linkSlotNum int) Option[K, V] {
	return func(o *option[K, V]) {
		o.linkSlotNum = linkSlotNum
	}
}

// WithHash 设置key的哈希函数
// string、int32、int64、uint64、int类型的key有默认实现，其他类型在分槽或启用关联时必须设置
func WithHash[K comparable, V any](hash func(K) uint64) Option[K, V] {
	return func(o *option[K, V]) {
		o.hash = hash
	}
}

// WithEvictCallback 设置淘汰回调，在关联的缓存项删除之后调用
func WithEvictCallback[K comparable, V any](fn lru.EvictCallback[K, V]) Option[K, V] {
	return func(o *option[K, V]) {
		o.onEvict = fn
	}
}

// WithTarget 设置统计指标收集器
func WithTarget[K comparable, V any](target lru.Target) Option[K, V] {
	if target == nil {
		panic("target should not be nil")
	}
	return func(o *option[K, V]) {
		o.target = target
	}
}

// WithDeleteKeyBefore 添加删除前的回调，可以多次调用
func WithDeleteKeyBefore[K comparable, V any](fn func(key K)) Option[K, V] {
	if fn == nil {
		panic("fn should not be nil")
	}
	return func(o *option[K, V]) {
		o.delFn = append(o.delFn, fn)
	}
}
