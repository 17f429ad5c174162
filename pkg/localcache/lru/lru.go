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

import "github.com/hashicorp/golang-lru/v2/simplelru"

// EvictCallback 缓存项因容量不足被淘汰时的回调
type EvictCallback[K comparable, V any] simplelru.EvictCallback[K, V]

// SizeFunc 计算一个缓存项占用的容量
// 返回值必须非负，并且同一个缓存项在驻留期间多次计算的结果必须相同
type SizeFunc[K comparable, V any] func(key K, value V) int

// LRU 定义了按最近最少使用淘汰的缓存
// Put 返回被替换的旧值，Remove 返回被删除的值；第二个返回值表示旧值是否存在
// key为nil时所有操作都返回 ErrNilKey
type LRU[K comparable, V any] interface {
	// Get 返回key对应的值，并把它标记为最近使用
	Get(key K) (V, bool, error)

	// Put 写入缓存项，写入后容量超限时淘汰最久未使用的缓存项
	Put(key K, value V) (V, bool, error)

	// Remove 删除缓存项
	Remove(key K) (V, bool, error)

	// Clear 删除所有缓存项
	Clear()

	// Len 返回缓存项数量
	Len() int

	// Size 返回所有缓存项占用容量之和
	Size() int
}

// Target 收集缓存的统计指标
type Target interface {
	IncrGetHit()
	IncrGetMiss()
	IncrPut()
	IncrEvict()
	IncrDelHit()
	IncrDelNotFound()
}

// EmptyTarget 不做任何统计
type EmptyTarget struct{}

func (EmptyTarget) IncrGetHit()      {}
func (EmptyTarget) IncrGetMiss()     {}
func (EmptyTarget) IncrPut()         {}
func (EmptyTarget) IncrEvict()       {}
func (EmptyTarget) IncrDelHit()      {}
func (EmptyTarget) IncrDelNotFound() {}
