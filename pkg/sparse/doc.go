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

// Package sparse 提供以int32为键的有序映射 IntMap
//
// IntMap 使用两个平行数组保存键和值，键数组保持升序，通过二分查找定位。
// 在键稀疏、数量不大的场景下，它比 map[int32]V 占用更少的内存。
//
// 删除操作不会移动元素，只把对应单元标记为墓碑；墓碑在需要时才通过一次压缩统一回收：
// 插入时数组已满、调用 Size 或任何按下标访问的方法之前。
//
// IntMap 不是并发安全的，同一时刻只能由一个goroutine使用，或者由调用方自行加锁。
//
// 使用示例：
//
//	m := sparse.NewDefault[string]()
//	m.Put(5, "x")
//	m.Put(1, "y")
//	m.Delete(5)
//	v, ok := m.Get(1) // "y", true
package sparse // import "github.com/openimsdk/cachekit/pkg/sparse"
