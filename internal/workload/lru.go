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

package workload

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"
	"golang.org/x/sync/errgroup"

	"github.com/openimsdk/cachekit/pkg/localcache"
)

// SizedCache 可以报告缓存项数量和已用容量的缓存
type SizedCache interface {
	localcache.Cache[string, []byte]
	Len() int
	Size() int
}

type LRUOptions struct {
	Workers   int   // 并发goroutine数量
	Ops       int   // 每个goroutine执行的操作数
	KeySpace  int   // key取值范围
	ValueSize int   // value最大字节数
	Seed      int64 // 随机种子，worker i 使用 Seed+i
}

func (o *LRUOptions) check() error {
	if o.Workers <= 0 || o.Ops < 0 || o.KeySpace <= 0 || o.ValueSize <= 0 {
		return errs.ErrArgs.WrapMsg("invalid lru workload options",
			"workers", o.Workers, "ops", o.Ops, "keySpace", o.KeySpace, "valueSize", o.ValueSize)
	}
	return nil
}

type LRUReport struct {
	Gets    int64
	Hits    int64
	Puts    int64
	Removes int64
	Len     int
	Size    int
}

func (r LRUReport) HitRate() float64 {
	if r.Gets == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Gets)
}

func LRUKey(i int) string {
	return fmt.Sprintf("key_%d", i)
}

// RunLRU 并发执行读写删除操作，读占一半，写占3/8，删除占1/8
//
// 每个worker读到的value长度必须等于写入时的长度，否则返回错误。
func RunLRU(ctx context.Context, cache SizedCache, opts LRUOptions) (*LRUReport, error) {
	if err := opts.check(); err != nil {
		return nil, err
	}
	var gets, hits, puts, removes atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.Workers; w++ {
		r := rand.New(rand.NewSource(opts.Seed + int64(w)))
		g.Go(func() error {
			for i := 0; i < opts.Ops; i++ {
				if i%256 == 0 {
					if err := ctx.Err(); err != nil {
						return errs.Wrap(err)
					}
				}
				k := r.Intn(opts.KeySpace)
				key := LRUKey(k)
				switch op := r.Intn(8); {
				case op < 4:
					gets.Add(1)
					value, ok, err := cache.Get(key)
					if err != nil {
						return err
					}
					if !ok {
						continue
					}
					hits.Add(1)
					if len(value) != valueLen(k, opts.ValueSize) {
						return errs.ErrInternalServer.WrapMsg("unexpected value length", "key", key, "len", len(value))
					}
				case op < 7:
					if _, _, err := cache.Put(key, make([]byte, valueLen(k, opts.ValueSize))); err != nil {
						return err
					}
					puts.Add(1)
				default:
					if _, _, err := cache.Remove(key); err != nil {
						return err
					}
					removes.Add(1)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	report := &LRUReport{
		Gets:    gets.Load(),
		Hits:    hits.Load(),
		Puts:    puts.Load(),
		Removes: removes.Load(),
		Len:     cache.Len(),
		Size:    cache.Size(),
	}
	log.ZInfo(ctx, "lru workload finished", "workers", opts.Workers, "ops", opts.Ops,
		"gets", report.Gets, "hitRate", report.HitRate(), "puts", report.Puts, "removes", report.Removes,
		"len", report.Len, "size", report.Size)
	return report, nil
}

// valueLen 同一个key总是写入相同长度的value
func valueLen(k int, valueSize int) int {
	return k%valueSize + 1
}
