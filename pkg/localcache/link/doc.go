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

// Package link 管理缓存key之间的关联关系
//
// 建立关联后，删除其中任一key会返回所有与之直接或间接关联的key，
// 调用方据此把这些缓存项一起删除。关联关系按key的哈希分片存储，每个分片独立加锁。
//
// 使用示例：
//
//	l, _ := link.New[string](16, localcache.StringHash)
//	l.Link("user:1", "user_friends:1", "user_groups:1")
//	keys := l.Del("user_friends:1") // user:1, user_friends:1, user_groups:1
package link // import "github.com/openimsdk/cachekit/pkg/localcache/link"
