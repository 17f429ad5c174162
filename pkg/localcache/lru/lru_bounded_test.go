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
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// cacheTarget 使用原子计数实现 Target
type cacheTarget struct {
	getHit      int64
	getMiss     int64
	put         int64
	evict       int64
	delHit      int64
	delNotFound int64
}

func (r *cacheTarget) IncrGetHit()      { atomic.AddInt64(&r.getHit, 1) }
func (r *cacheTarget) IncrGetMiss()     { atomic.AddInt64(&r.getMiss, 1) }
func (r *cacheTarget) IncrPut()         { atomic.AddInt64(&r.put, 1) }
func (r *cacheTarget) IncrEvict()       { atomic.AddInt64(&r.evict, 1) }
func (r *cacheTarget) IncrDelHit()      { atomic.AddInt64(&r.delHit, 1) }
func (r *cacheTarget) IncrDelNotFound() { atomic.AddInt64(&r.delNotFound, 1) }

func (r *cacheTarget) String() string {
	return fmt.Sprintf("getHit: %d, getMiss: %d, put: %d, evict: %d, delHit: %d, delNotFound: %d",
		r.getHit, r.getMiss, r.put, r.evict, r.delHit, r.delNotFound)
}

func lenSize(key string, value string) int {
	return len(value)
}

// residentSize 按当前驻留的缓存项重新计算容量之和
func residentSize[K comparable, V any](x *BoundedLRU[K, V]) int {
	var n int
	for _, key := range x.Keys() {
		value, ok := x.Peek(key)
		if ok {
			n += x.sizeOf(key, value)
		}
	}
	return n
}

func TestEvictLeastRecentlyUsed(t *testing.T) {
	c, err := NewBoundedLRU[string, int](2)
	require.NoError(t, err)

	_, _, err = c.Put("A", 1)
	require.NoError(t, err)
	_, _, err = c.Put("B", 2)
	require.NoError(t, err)
	_, _, err = c.Put("C", 3)
	require.NoError(t, err)

	_, ok, _ := c.Get("A")
	assert.False(t, ok)
	v, ok, _ := c.Get("B")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	v, ok, _ = c.Get("C")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, c.Size())
}

func TestGetRefreshesRecency(t *testing.T) {
	c, err := NewBoundedLRU[string, int](3)
	require.NoError(t, err)
	for i, k := range []string{"k1", "k2", "k3"} {
		_, _, err := c.Put(k, i)
		require.NoError(t, err)
	}

	_, ok, _ := c.Get("k1")
	require.True(t, ok)
	assert.Equal(t, []string{"k2", "k3", "k1"}, c.Keys())

	_, _, err = c.Put("k4", 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"k3", "k1", "k4"}, c.Keys())
}

func TestGetDoesNotChangeSize(t *testing.T) {
	c, err := NewBoundedLRU[string, string](100, WithSizeOf(lenSize))
	require.NoError(t, err)
	_, _, err = c.Put("a", "hello")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		c.Get("a")
		c.Get("missing")
		assert.Equal(t, 5, c.Size())
	}
}

func TestPutReplaceAdjustsSize(t *testing.T) {
	c, err := NewBoundedLRU[string, string](100, WithSizeOf(lenSize))
	require.NoError(t, err)

	prev, replaced, err := c.Put("a", "1234")
	require.NoError(t, err)
	assert.False(t, replaced)
	assert.Equal(t, "", prev)

	prev, replaced, err = c.Put("a", "12")
	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Equal(t, "1234", prev)
	assert.Equal(t, 2, c.Size())
	assert.Equal(t, 1, c.Len())
}

func TestOversizedEntryStaysAlone(t *testing.T) {
	c, err := NewBoundedLRU[string, string](5, WithSizeOf(lenSize))
	require.NoError(t, err)
	_, _, err = c.Put("a", "12")
	require.NoError(t, err)
	_, _, err = c.Put("b", "34")
	require.NoError(t, err)

	_, _, err = c.Put("c", "1234567")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, c.Keys())
	assert.Equal(t, 7, c.Size())

	_, _, err = c.Put("d", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, c.Keys())
	assert.Equal(t, 1, c.Size())
}

func TestNegativeSize(t *testing.T) {
	c, err := NewBoundedLRU[string, int](10, WithSizeOf(func(key string, value int) int { return value }))
	require.NoError(t, err)
	_, _, err = c.Put("a", 3)
	require.NoError(t, err)

	_, _, err = c.Put("a", -1)
	assert.True(t, errors.Is(err, ErrNegativeSize))
	v, ok := c.Peek("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 3, c.Size())
}

func TestNilArguments(t *testing.T) {
	c, err := NewBoundedLRU[*int, map[string]int](10)
	require.NoError(t, err)

	one := 1
	_, _, err = c.Put(nil, map[string]int{})
	assert.ErrorIs(t, err, ErrNilKey)
	_, _, err = c.Put(&one, nil)
	assert.ErrorIs(t, err, ErrNilValue)
	_, _, err = c.Remove(nil)
	assert.ErrorIs(t, err, ErrNilKey)
	assert.Equal(t, 0, c.Len())

	_, ok, err := c.Get(nil)
	assert.ErrorIs(t, err, ErrNilKey)
	assert.False(t, ok)

	var anyKey any
	ac, err := NewBoundedLRU[any, any](10)
	require.NoError(t, err)
	_, _, err = ac.Put(anyKey, 1)
	assert.ErrorIs(t, err, ErrNilKey)
	_, _, err = ac.Put(0, 0)
	assert.NoError(t, err)
}

func TestInvalidMaxSize(t *testing.T) {
	_, err := NewBoundedLRU[string, int](0)
	assert.Error(t, err)
	_, err = NewBoundedLRU[string, int](-3)
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	c, err := NewBoundedLRU[string, string](100, WithSizeOf(lenSize))
	require.NoError(t, err)
	_, _, _ = c.Put("a", "xyz")
	_, _, _ = c.Put("b", "q")

	prev, removed, err := c.Remove("a")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, "xyz", prev)
	assert.Equal(t, 1, c.Size())
	_, ok, _ := c.Get("a")
	assert.False(t, ok)

	_, removed, err = c.Remove("a")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, c.Size())
}

func TestClear(t *testing.T) {
	c, err := NewBoundedLRU[int, int](10)
	require.NoError(t, err)
	c.Clear()
	for i := 0; i < 5; i++ {
		_, _, _ = c.Put(i, i)
	}
	c.Clear()
	assert.Equal(t, 0, c.Size())
	assert.Equal(t, 0, c.Len())
	_, ok, _ := c.Get(1)
	assert.False(t, ok)
}

func TestString(t *testing.T) {
	c, err := NewBoundedLRU[string, int](10)
	require.NoError(t, err)
	_, _, _ = c.Put("a", 1)
	_, _, _ = c.Put("b", 2)
	assert.Equal(t, "a=1;b=2;maxSize=10, size=2", c.String())
}

func TestInconsistentSizePanics(t *testing.T) {
	c, err := NewBoundedLRU[string, int](10)
	require.NoError(t, err)
	_, _, _ = c.Put("a", 1)

	// 模拟容量统计被破坏
	c.size = -5
	assert.Panics(t, func() { _, _, _ = c.Put("b", 1) })

	c.Clear()
	c.size = 3
	assert.Panics(t, func() { c.trim() })
}

func TestOnEvictCanReenter(t *testing.T) {
	var c *BoundedLRU[int, int]
	var evictedKeys []int
	c, err := NewBoundedLRU[int, int](2, WithOnEvict[int, int](func(key int, value int) {
		evictedKeys = append(evictedKeys, key)
		c.Len()
	}))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, _, err := c.Put(i, i)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{0, 1, 2}, evictedKeys)

	// Remove 和 Clear 不是淘汰
	_, _, _ = c.Remove(3)
	c.Clear()
	assert.Equal(t, []int{0, 1, 2}, evictedKeys)
}

func TestTarget(t *testing.T) {
	target := &cacheTarget{}
	c, err := NewBoundedLRU[string, int](1, WithTarget[string, int](target))
	require.NoError(t, err)

	_, _, _ = c.Put("a", 1)
	_, _, _ = c.Put("b", 2)
	c.Get("a")
	c.Get("b")
	_, _, _ = c.Remove("b")
	_, _, _ = c.Remove("b")

	assert.Equal(t, "getHit: 1, getMiss: 1, put: 2, evict: 1, delHit: 1, delNotFound: 1", target.String())
}

func TestSizeAccountingRandomOps(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	c, err := NewBoundedLRU[string, string](64, WithSizeOf(lenSize))
	require.NoError(t, err)

	for i := 0; i < 5000; i++ {
		key := fmt.Sprintf("key_%d", r.Intn(40))
		switch r.Intn(10) {
		case 0:
			c.Clear()
		case 1, 2, 3:
			_, _, err := c.Remove(key)
			require.NoError(t, err)
		default:
			value := string(make([]byte, r.Intn(20)))
			_, _, err := c.Put(key, value)
			require.NoError(t, err)
			assert.True(t, c.Size() <= c.MaxSize() || c.Len() == 1)
		}
		require.Equal(t, residentSize(c), c.Size(), "step %d", i)
	}
}

func TestConcurrentAccess(t *testing.T) {
	target := &cacheTarget{}
	c, err := NewBoundedLRU[string, string](500, WithSizeOf(lenSize), WithTarget[string, string](target))
	require.NoError(t, err)

	var g errgroup.Group
	for w := 0; w < 16; w++ {
		w := w
		g.Go(func() error {
			r := rand.New(rand.NewSource(int64(w)))
			for i := 0; i < 2000; i++ {
				key := fmt.Sprintf("key_%d", r.Intn(200))
				switch r.Intn(4) {
				case 0:
					if _, _, err := c.Remove(key); err != nil {
						return err
					}
				case 1:
					c.Get(key)
				default:
					if _, _, err := c.Put(key, key); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.LessOrEqual(t, c.Size(), c.MaxSize())
	assert.Equal(t, residentSize(c), c.Size())
	t.Log("cache target:", target.String())
}
