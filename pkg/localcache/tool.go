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
	"encoding/binary"
	"hash/fnv"
	"unsafe"
)

// StringHash 使用FNV-64a计算字符串的哈希值
func StringHash(key string) uint64 {
	h := fnv.New64a()
	// 避免字符串到字节切片的拷贝
	_, _ = h.Write(unsafe.Slice(unsafe.StringData(key), len(key)))
	return h.Sum64()
}

// Int32Hash 使用FNV-64a计算int32的哈希值
func Int32Hash(key int32) uint64 {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(key))
	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// Uint64Hash 使用FNV-64a计算uint64的哈希值
func Uint64Hash(key uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// defaultHash 返回常见key类型的哈希函数，其他类型返回nil
func defaultHash[K comparable]() func(K) uint64 {
	var zero K
	switch any(zero).(type) {
	case string:
		return func(k K) uint64 { return StringHash(any(k).(string)) }
	case int32:
		return func(k K) uint64 { return Int32Hash(any(k).(int32)) }
	case int64:
		return func(k K) uint64 { return Uint64Hash(uint64(any(k).(int64))) }
	case int:
		return func(k K) uint64 { return Uint64Hash(uint64(any(k).(int))) }
	case uint64:
		return func(k K) uint64 { return Uint64Hash(any(k).(uint64)) }
	default:
		return nil
	}
}
