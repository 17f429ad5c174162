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

package prommetrics

import (
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openimsdk/cachekit/pkg/localcache/lru"
)

func TestCacheTarget(t *testing.T) {
	reg := prometheus.NewRegistry()
	target, err := NewCacheTarget("user", reg)
	require.NoError(t, err)

	c, err := lru.NewBoundedLRU[string, int](2, lru.WithTarget[string, int](target))
	require.NoError(t, err)

	_, _, _ = c.Put("a", 1)
	_, _, _ = c.Put("b", 2)
	_, _, _ = c.Put("c", 3) // 淘汰 a
	c.Get("a")
	c.Get("b")
	_, _, _ = c.Remove("c")
	_, _, _ = c.Remove("x")

	assert.Equal(t, float64(3), testutil.ToFloat64(target.put))
	assert.Equal(t, float64(1), testutil.ToFloat64(target.evict))
	assert.Equal(t, float64(1), testutil.ToFloat64(target.getHit))
	assert.Equal(t, float64(1), testutil.ToFloat64(target.getMiss))
	assert.Equal(t, float64(1), testutil.ToFloat64(target.delHit))
	assert.Equal(t, float64(1), testutil.ToFloat64(target.delNotFound))
}

func TestCacheTargetShareCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	user, err := NewCacheTarget("user", reg)
	require.NoError(t, err)
	group, err := NewCacheTarget("group", reg)
	require.NoError(t, err)

	user.IncrPut()
	user.IncrPut()
	group.IncrPut()

	expected := `
# HELP cachekit_lru_ops_total The number of lru cache operations by result.
# TYPE cachekit_lru_ops_total counter
cachekit_lru_ops_total{cache="group",op="put"} 1
cachekit_lru_ops_total{cache="user",op="put"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "cachekit_lru_ops_total"))
}

func TestNewCacheTargetInvalid(t *testing.T) {
	_, err := NewCacheTarget("", prometheus.NewRegistry())
	assert.Error(t, err)
}

func TestStart(t *testing.T) {
	reg := prometheus.NewRegistry()
	target, err := NewCacheTarget("sparse", reg)
	require.NoError(t, err)
	target.IncrGetHit()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	go func() { _ = Start(listener, reg) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cachekit_lru_ops_total{cache="sparse",op="get_hit"} 1`)
}
