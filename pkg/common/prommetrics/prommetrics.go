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
	"errors"
	"net"
	"net/http"

	"github.com/openimsdk/tools/errs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openimsdk/cachekit/pkg/localcache/lru"
)

const (
	Namespace = "cachekit"

	OpGetHit      = "get_hit"
	OpGetMiss     = "get_miss"
	OpPut         = "put"
	OpEvict       = "evict"
	OpDelHit      = "del_hit"
	OpDelNotFound = "del_not_found"
)

var _ lru.Target = (*CacheTarget)(nil)

// NewOpsCounter 创建 cachekit_lru_ops_total{cache,op} 计数器
func NewOpsCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "lru",
		Name:      "ops_total",
		Help:      "The number of lru cache operations by result.",
	}, []string{"cache", "op"})
}

// CacheTarget 使用Prometheus计数器实现 lru.Target
type CacheTarget struct {
	getHit      prometheus.Counter
	getMiss     prometheus.Counter
	put         prometheus.Counter
	evict       prometheus.Counter
	delHit      prometheus.Counter
	delNotFound prometheus.Counter
}

// NewCacheTarget 为名为 name 的缓存创建统计目标并注册到 reg
//
// 多个缓存共享同一个计数器，按 cache 标签区分，重复注册时复用已注册的计数器。
func NewCacheTarget(name string, reg prometheus.Registerer) (*CacheTarget, error) {
	if name == "" {
		return nil, errs.ErrArgs.WrapMsg("cache name is empty")
	}
	vec := NewOpsCounter()
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, errs.WrapMsg(err, "register lru counter failed", "cache", name)
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, errs.ErrInternalServer.WrapMsg("registered collector is not a counter vec", "cache", name)
		}
		vec = existing
	}
	return &CacheTarget{
		getHit:      vec.WithLabelValues(name, OpGetHit),
		getMiss:     vec.WithLabelValues(name, OpGetMiss),
		put:         vec.WithLabelValues(name, OpPut),
		evict:       vec.WithLabelValues(name, OpEvict),
		delHit:      vec.WithLabelValues(name, OpDelHit),
		delNotFound: vec.WithLabelValues(name, OpDelNotFound),
	}, nil
}

func (t *CacheTarget) IncrGetHit()      { t.getHit.Inc() }
func (t *CacheTarget) IncrGetMiss()     { t.getMiss.Inc() }
func (t *CacheTarget) IncrPut()         { t.put.Inc() }
func (t *CacheTarget) IncrEvict()       { t.evict.Inc() }
func (t *CacheTarget) IncrDelHit()      { t.delHit.Inc() }
func (t *CacheTarget) IncrDelNotFound() { t.delNotFound.Inc() }

// Handler 返回 gatherer 的 /metrics 处理器
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Start 在 listener 上提供 /metrics，直到监听关闭
func Start(listener net.Listener, gatherer prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return http.Serve(listener, mux)
}
