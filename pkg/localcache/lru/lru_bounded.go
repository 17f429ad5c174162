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

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"
)

var (
	ErrNilKey   = errs.ErrArgs.WrapMsg("key is nil")
	ErrNilValue = errs.ErrArgs.WrapMsg("value is nil")

	// ErrNegativeSize SizeFunc 返回了负数
	ErrNegativeSize = errs.ErrInternalServer.WrapMsg("sizeOf returned a negative size")
)

// boundedItem 驻留的缓存项，size在写入时计算一次，之后不再变化
type boundedItem[V any] struct {
	value V
	size  int
}

type evicted[K comparable, V any] struct {
	key   K
	value V
}

// BoundedOption 配置 BoundedLRU
type BoundedOption[K comparable, V any] func(x *BoundedLRU[K, V])

// WithSizeOf 设置缓存项的容量计算函数，默认每个缓存项占用1
func WithSizeOf[K comparable, V any](fn SizeFunc[K, V]) BoundedOption[K, V] {
	if fn == nil {
		panic("sizeOf should not be nil")
	}
	return func(x *BoundedLRU[K, V]) {
		x.sizeOf = fn
	}
}

// WithTarget 设置统计指标收集器
func WithTarget[K comparable, V any](target Target) BoundedOption[K, V] {
	if target == nil {
		panic("target should not be nil")
	}
	return func(x *BoundedLRU[K, V]) {
		x.target = target
	}
}

// WithOnEvict 设置淘汰回调
// 回调在释放锁之后执行，因此可以在回调中再次操作缓存
func WithOnEvict[K comparable, V any](onEvict EvictCallback[K, V]) BoundedOption[K, V] {
	return func(x *BoundedLRU[K, V]) {
		x.onEvict = onEvict
	}
}

// NewBoundedLRU 创建总容量为maxSize的LRU缓存
// 每个缓存项占用的容量由 SizeFunc 决定，默认为1，此时maxSize就是最大缓存项数量
func NewBoundedLRU[K comparable, V any](maxSize int, opts ...BoundedOption[K, V]) (*BoundedLRU[K, V], error) {
	if maxSize <= 0 {
		return nil, errs.ErrArgs.WrapMsg("maxSize must be greater than 0", "maxSize", maxSize)
	}
	// 淘汰由容量统计驱动，simplelru自身的数量上限不会触发
	core, err := simplelru.NewLRU[K, boundedItem[V]](math.MaxInt, nil)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	x := &BoundedLRU[K, V]{
		core:    core,
		maxSize: maxSize,
		sizeOf:  func(K, V) int { return 1 },
		target:  EmptyTarget{},
	}
	for _, o := range opts {
		o(x)
	}
	return x, nil
}

// BoundedLRU 按容量限制大小的LRU缓存
// 一把互斥锁同时保护缓存项、访问顺序和容量统计，所有操作在锁内串行执行
type BoundedLRU[K comparable, V any] struct {
	lock    sync.Mutex
	core    *simplelru.LRU[K, boundedItem[V]]
	size    int // 所有驻留缓存项的size之和
	maxSize int
	sizeOf  SizeFunc[K, V]
	target  Target
	onEvict EvictCallback[K, V]
}

// Get 返回key对应的值，并把它标记为最近使用
func (x *BoundedLRU[K, V]) Get(key K) (V, bool, error) {
	var zero V
	if isNil(key) {
		return zero, false, ErrNilKey
	}

	x.lock.Lock()
	defer x.lock.Unlock()

	item, ok := x.core.Get(key)
	if !ok {
		x.target.IncrGetMiss()
		return zero, false, nil
	}
	x.target.IncrGetHit()
	return item.value, true, nil
}

// Peek 返回key对应的值，不改变访问顺序
func (x *BoundedLRU[K, V]) Peek(key K) (V, bool) {
	x.lock.Lock()
	defer x.lock.Unlock()

	item, ok := x.core.Peek(key)
	return item.value, ok
}

// Put 写入缓存项并标记为最近使用，返回被替换的旧值
// 写入后总容量超过maxSize时，从最久未使用的缓存项开始淘汰；
// 最后剩下的一个缓存项不会被淘汰，即使它自身的size已经超过maxSize
func (x *BoundedLRU[K, V]) Put(key K, value V) (V, bool, error) {
	var zero V
	if isNil(key) {
		return zero, false, ErrNilKey
	}
	if isNil(value) {
		return zero, false, ErrNilValue
	}

	prev, replaced, evictedItems, err := x.put(key, value)
	if err != nil {
		return zero, false, err
	}
	for _, e := range evictedItems {
		x.onEvict(e.key, e.value)
	}
	return prev, replaced, nil
}

func (x *BoundedLRU[K, V]) put(key K, value V) (prev V, replaced bool, evictedItems []evicted[K, V], err error) {
	x.lock.Lock()
	defer x.lock.Unlock()

	size := x.sizeOf(key, value)
	if size < 0 {
		return prev, false, nil, errs.WrapMsg(ErrNegativeSize, "put", "key", key, "size", size)
	}

	old, ok := x.core.Peek(key)
	x.core.Add(key, boundedItem[V]{value: value, size: size})
	x.size += size
	if ok {
		x.size -= old.size
		prev, replaced = old.value, true
	}
	x.target.IncrPut()

	return prev, replaced, x.trim(), nil
}

// trim 淘汰最久未使用的缓存项，直到总容量不超过maxSize或只剩一个缓存项
func (x *BoundedLRU[K, V]) trim() []evicted[K, V] {
	var evictedItems []evicted[K, V]
	for {
		if x.size < 0 || (x.core.Len() == 0 && x.size != 0) {
			err := errs.ErrInternalServer.WrapMsg("sizeOf is reporting inconsistent results", "size", x.size, "len", x.core.Len())
			log.ZError(context.Background(), "lru size accounting corrupted", err, "maxSize", x.maxSize)
			panic(err)
		}
		if x.size <= x.maxSize || x.core.Len() <= 1 {
			return evictedItems
		}

		key, item, _ := x.core.RemoveOldest()
		x.size -= item.size
		x.target.IncrEvict()
		log.ZDebug(context.Background(), "lru evict", "key", key, "size", item.size, "remain", x.size)
		if x.onEvict != nil {
			evictedItems = append(evictedItems, evicted[K, V]{key: key, value: item.value})
		}
	}
}

// Remove 删除缓存项，返回被删除的值
func (x *BoundedLRU[K, V]) Remove(key K) (V, bool, error) {
	var zero V
	if isNil(key) {
		return zero, false, ErrNilKey
	}

	x.lock.Lock()
	defer x.lock.Unlock()

	item, ok := x.core.Peek(key)
	if !ok {
		x.target.IncrDelNotFound()
		return zero, false, nil
	}
	x.core.Remove(key)
	x.size -= item.size
	x.target.IncrDelHit()
	return item.value, true, nil
}

// Clear 删除所有缓存项，不触发淘汰回调
func (x *BoundedLRU[K, V]) Clear() {
	x.lock.Lock()
	defer x.lock.Unlock()

	x.core.Purge()
	x.size = 0
}

func (x *BoundedLRU[K, V]) Len() int {
	x.lock.Lock()
	defer x.lock.Unlock()
	return x.core.Len()
}

func (x *BoundedLRU[K, V]) Size() int {
	x.lock.Lock()
	defer x.lock.Unlock()
	return x.size
}

func (x *BoundedLRU[K, V]) MaxSize() int {
	return x.maxSize
}

// Keys 按从旧到新的顺序返回所有key，不改变访问顺序
func (x *BoundedLRU[K, V]) Keys() []K {
	x.lock.Lock()
	defer x.lock.Unlock()
	return x.core.Keys()
}

// String 按从旧到新的顺序输出缓存项，例如 a=1;b=2;maxSize=10, size=2
func (x *BoundedLRU[K, V]) String() string {
	x.lock.Lock()
	defer x.lock.Unlock()

	var b strings.Builder
	for _, key := range x.core.Keys() {
		item, _ := x.core.Peek(key)
		fmt.Fprintf(&b, "%v=%v;", key, item.value)
	}
	fmt.Fprintf(&b, "maxSize=%d, size=%d", x.maxSize, x.size)
	return b.String()
}

// isNil 判断v是否为nil：nil接口，或者nil的指针、map、切片、函数、通道
func isNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
