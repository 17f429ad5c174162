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
	"errors"
	"fmt"
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringHash(k string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k))
	return h.Sum64()
}

func TestSlotLRU(t *testing.T) {
	l, err := NewSlotLRU[string, int](8, stringHash, func() (LRU[string, int], error) {
		return NewBoundedLRU[string, int](4)
	})
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		_, _, err := l.Put(fmt.Sprintf("key_%d", i), i)
		require.NoError(t, err)
	}
	// 每个槽位最多驻留4项
	assert.LessOrEqual(t, l.Len(), 32)
	assert.Equal(t, l.Len(), l.Size())

	_, _, err = l.Put("key_x", 7)
	require.NoError(t, err)
	v, ok, _ := l.Get("key_x")
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	prev, removed, err := l.Remove("key_x")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 7, prev)

	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.Size())
}

func TestSlotLRUInvalid(t *testing.T) {
	create := func() (LRU[string, int], error) {
		return NewBoundedLRU[string, int](1)
	}
	_, err := NewSlotLRU[string, int](0, stringHash, create)
	assert.Error(t, err)
	_, err = NewSlotLRU[string, int](2, nil, create)
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = NewSlotLRU[string, int](2, stringHash, func() (LRU[string, int], error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestSlotLRUNilKey(t *testing.T) {
	// hash解引用key，nil key不能走到hash
	l, err := NewSlotLRU[*int, int](4, func(k *int) uint64 { return uint64(*k) }, func() (LRU[*int, int], error) {
		return NewBoundedLRU[*int, int](4)
	})
	require.NoError(t, err)

	_, ok, err := l.Get(nil)
	assert.ErrorIs(t, err, ErrNilKey)
	assert.False(t, ok)
	_, _, err = l.Put(nil, 1)
	assert.ErrorIs(t, err, ErrNilKey)
	_, _, err = l.Remove(nil)
	assert.ErrorIs(t, err, ErrNilKey)

	one := 1
	_, _, err = l.Put(&one, 1)
	require.NoError(t, err)
	v, ok, err := l.Get(&one)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
