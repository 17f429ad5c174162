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

// Package localcache 提供进程内的本地缓存
//
// 主要组件：
//   - Cache: 缓存的通用接口，提供 Get、Put、Remove、Clear
//   - lru.BoundedLRU: 按容量限制大小的LRU缓存，支持自定义每个缓存项占用的容量
//   - link.Link: 缓存key之间的关联关系，支持级联删除
//
// 使用示例：
//
//	cache, err := New[string, []byte](
//	    WithMaxSize[string, []byte](64<<20),
//	    WithSizeOf(func(key string, value []byte) int { return len(value) }),
//	    WithSlotNum[string, []byte](16),
//	    WithLinkSlotNum[string, []byte](16),
//	)
//
//	_, _, err = cache.Put("user:1", data)
//	cache.Link("user:1", "user_friends:1") // 删除任一key时另一个也会被删除
//	value, ok, err := cache.Get("user:1")
package localcache // import "github.com/openimsdk/cachekit/pkg/localcache"
