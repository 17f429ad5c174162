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
	"math/rand"

	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"

	"github.com/openimsdk/cachekit/pkg/sparse"
)

const verifyInterval = 64

type SparseOptions struct {
	Ops             int
	KeySpace        int32
	InitialCapacity int
	Seed            int64
}

type SparseReport struct {
	Puts    int
	Appends int
	Deletes int
	Gets    int
	Hits    int
	Size    int
	Cap     int
}

// RunSparse 对稀疏映射执行随机操作，并与内置map逐步比对
//
// 每 verifyInterval 步以及结束时检查key严格递增且内容与map一致，否则返回错误。
func RunSparse(ctx context.Context, opts SparseOptions) (*SparseReport, error) {
	if opts.Ops < 0 || opts.KeySpace <= 0 || opts.InitialCapacity < 0 {
		return nil, errs.ErrArgs.WrapMsg("invalid sparse workload options",
			"ops", opts.Ops, "keySpace", opts.KeySpace, "initialCapacity", opts.InitialCapacity)
	}
	var (
		r      = rand.New(rand.NewSource(opts.Seed))
		m      = sparse.New[int64](opts.InitialCapacity)
		expect = make(map[int32]int64)
		report SparseReport
		next   int32
	)
	for i := 0; i < opts.Ops; i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errs.Wrap(err)
			}
		}
		key := r.Int31n(opts.KeySpace)
		switch op := r.Intn(10); {
		case op < 4:
			report.Gets++
			value, ok := m.Get(key)
			want, exist := expect[key]
			if ok != exist || value != want {
				return nil, errs.ErrInternalServer.WrapMsg("sparse get mismatch", "key", key, "value", value, "want", want)
			}
			if ok {
				report.Hits++
			}
		case op < 6:
			value := r.Int63()
			m.Put(key, value)
			expect[key] = value
			report.Puts++
		case op < 8:
			// 递增的key走追加路径
			next += 1 + r.Int31n(3)
			value := r.Int63()
			m.Append(next, value)
			expect[next] = value
			report.Appends++
		default:
			m.Delete(key)
			delete(expect, key)
			report.Deletes++
		}
		if i%verifyInterval == 0 {
			if err := verifySparse(m, expect); err != nil {
				return nil, errs.WrapMsg(err, "sparse verify failed", "step", i)
			}
		}
	}
	if err := verifySparse(m, expect); err != nil {
		return nil, errs.WrapMsg(err, "sparse verify failed", "step", opts.Ops)
	}
	report.Size = m.Size()
	report.Cap = m.Cap()
	log.ZInfo(ctx, "sparse workload finished", "ops", opts.Ops, "puts", report.Puts, "appends", report.Appends,
		"deletes", report.Deletes, "hits", report.Hits, "size", report.Size, "cap", report.Cap)
	return &report, nil
}

func verifySparse(m *sparse.IntMap[int64], expect map[int32]int64) error {
	if m.Size() != len(expect) {
		return errs.ErrInternalServer.WrapMsg("size mismatch", "size", m.Size(), "want", len(expect))
	}
	for i := 0; i < m.Size(); i++ {
		key := m.KeyAt(i)
		if i > 0 && m.KeyAt(i-1) >= key {
			return errs.ErrInternalServer.WrapMsg("keys not ascending", "index", i, "key", key)
		}
		if want, ok := expect[key]; !ok || want != m.ValueAt(i) {
			return errs.ErrInternalServer.WrapMsg("value mismatch", "key", key)
		}
	}
	return nil
}
