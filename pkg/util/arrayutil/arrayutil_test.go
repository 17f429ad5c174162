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

package arrayutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinarySearch(t *testing.T) {
	keys := []int32{1, 3, 5, 7, 0, 0}

	assert.Equal(t, SearchResult{Index: 0, Found: true}, BinarySearch(keys, 4, 1))
	assert.Equal(t, SearchResult{Index: 3, Found: true}, BinarySearch(keys, 4, 7))
	assert.Equal(t, SearchResult{Index: 2}, BinarySearch(keys, 4, 4))
	assert.Equal(t, SearchResult{Index: 0}, BinarySearch(keys, 4, -9))
	// 0 存在于n之后的单元中，不应被命中
	assert.Equal(t, SearchResult{Index: 0}, BinarySearch(keys, 4, 0))
	assert.Equal(t, SearchResult{Index: 4}, BinarySearch(keys, 4, 100))
	assert.Equal(t, SearchResult{Index: 0}, BinarySearch(keys, 0, 3))
}

func TestIdealIntArraySize(t *testing.T) {
	assert.Equal(t, 1, IdealIntArraySize(0))
	assert.Equal(t, 1, IdealIntArraySize(1))
	assert.Equal(t, 5, IdealIntArraySize(2))
	assert.Equal(t, 13, IdealIntArraySize(10))
	assert.Equal(t, 29, IdealIntArraySize(14))

	for need := 0; need < 5000; need++ {
		assert.GreaterOrEqual(t, IdealIntArraySize(need), need)
	}
}

func TestIdealByteArraySize(t *testing.T) {
	assert.Equal(t, 4, IdealByteArraySize(3))
	assert.Equal(t, 52, IdealByteArraySize(40))
	assert.Equal(t, 1<<31-12, IdealByteArraySize(1<<31-100))
	assert.Equal(t, 1<<31, IdealByteArraySize(1<<31))
}
