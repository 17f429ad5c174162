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

// Package lru 提供按容量限制大小的LRU（Least Recently Used）缓存
//
// BoundedLRU 为每个缓存项计算一个非负的size，所有驻留缓存项的size之和不超过maxSize；
// 写入导致超限时，从最久未使用的缓存项开始淘汰。默认每个缓存项的size为1，
// 此时maxSize就是最大缓存项数量。
//
// BoundedLRU 使用一把互斥锁保护全部状态，不同key的操作之间同样串行。
// 需要更高并发时可以用 NewSlotLRU 把key按哈希分散到多个独立的实例中，
// 代价是淘汰顺序只在槽位内部成立。
//
// 使用示例：
//
//	cache, err := NewBoundedLRU[string, []byte](1<<20,
//	    WithSizeOf(func(key string, value []byte) int { return len(key) + len(value) }),
//	)
//	prev, replaced, err := cache.Put("key", []byte("value"))
//	value, ok, err := cache.Get("key")
package lru // import "github.com/openimsdk/cachekit/pkg/localcache/lru"
