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

// Package arrayutil 提供有序int32数组上的二分查找以及底层数组扩容时的容量取整
package arrayutil

import "slices"

// SearchResult 二分查找的结果
// Found为true时Index是命中的下标；否则Index是保持升序所需的插入位置
type SearchResult struct {
	Index int
	Found bool
}

// BinarySearch 在keys[0:n)中查找key
// keys[0:n)必须升序，n之后的单元不参与查找
func BinarySearch(keys []int32, n int, key int32) SearchResult {
	i, ok := slices.BinarySearch(keys[:n], key)
	return SearchResult{Index: i, Found: ok}
}

// IdealByteArraySize 返回不小于need的理想字节数组长度
// 候选长度为 2^i-12（i从4到31），预留的12字节对应对象头开销；超出范围时原样返回need
func IdealByteArraySize(need int) int {
	for i := 4; i < 32; i++ {
		if size := 1<<i - 12; need <= size {
			return size
		}
	}
	return need
}

// IdealIntArraySize 返回不小于need的理想int32数组长度，按4字节一个元素换算
func IdealIntArraySize(need int) int {
	return IdealByteArraySize(need*4) / 4
}
