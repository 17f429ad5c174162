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

package cmd

import (
	"fmt"

	"github.com/openimsdk/tools/errs"
	"github.com/spf13/cobra"

	"github.com/openimsdk/cachekit/internal/workload"
	"github.com/openimsdk/cachekit/pkg/common/prommetrics"
	"github.com/openimsdk/cachekit/pkg/localcache"
)

func newLRUCmd(r *RootCmd) *cobra.Command {
	opts := workload.LRUOptions{
		Workers:   8,
		Ops:       100000,
		KeySpace:  10000,
		ValueSize: 64,
		Seed:      1,
	}
	cmd := &cobra.Command{
		Use:   "lru",
		Short: "Run a concurrent workload against the bounded lru cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conf := r.config.LocalCache
			if !conf.Enable() {
				return errs.ErrArgs.WrapMsg("local cache is disabled", "maxSize", conf.MaxSize, "slotNum", conf.SlotNum)
			}
			target, err := prommetrics.NewCacheTarget("lru", r.registry)
			if err != nil {
				return err
			}
			c, err := localcache.New[string, []byte](
				localcache.WithMaxSize[string, []byte](conf.MaxSize),
				localcache.WithSlotNum[string, []byte](conf.SlotNum),
				localcache.WithLinkSlotNum[string, []byte](conf.LinkSlotNum),
				localcache.WithSizeOf(func(key string, value []byte) int { return len(value) }),
				localcache.WithTarget[string, []byte](target),
			)
			if err != nil {
				return err
			}
			if err := r.startMetrics(ctx); err != nil {
				return err
			}
			report, err := workload.RunLRU(ctx, c, opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "gets=%d hits=%d hitRate=%.4f puts=%d removes=%d len=%d size=%d maxSize=%d\n",
				report.Gets, report.Hits, report.HitRate(), report.Puts, report.Removes, report.Len, report.Size, conf.MaxSize)
			if wait, _ := cmd.Flags().GetBool(FlagWait); wait && r.config.Prometheus.Enable {
				waitSignal(ctx)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Workers, "workers", opts.Workers, "number of concurrent workers")
	cmd.Flags().IntVar(&opts.Ops, "ops", opts.Ops, "operations per worker")
	cmd.Flags().IntVar(&opts.KeySpace, "keys", opts.KeySpace, "number of distinct keys")
	cmd.Flags().IntVar(&opts.ValueSize, "value-size", opts.ValueSize, "max value size in bytes")
	cmd.Flags().Int64Var(&opts.Seed, "seed", opts.Seed, "random seed")
	cmd.Flags().Bool(FlagWait, false, "keep serving metrics until SIGTERM")
	return cmd
}

func newSparseCmd(r *RootCmd) *cobra.Command {
	opts := workload.SparseOptions{
		Ops:      100000,
		KeySpace: 4096,
		Seed:     1,
	}
	cmd := &cobra.Command{
		Use:   "sparse",
		Short: "Run a verified random workload against the sparse int map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.InitialCapacity = r.config.Sparse.InitialCapacity
			report, err := workload.RunSparse(cmd.Context(), opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "gets=%d hits=%d puts=%d appends=%d deletes=%d size=%d cap=%d\n",
				report.Gets, report.Hits, report.Puts, report.Appends, report.Deletes, report.Size, report.Cap)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Ops, "ops", opts.Ops, "number of operations")
	cmd.Flags().Int32Var(&opts.KeySpace, "keys", opts.KeySpace, "number of distinct keys")
	cmd.Flags().Int64Var(&opts.Seed, "seed", opts.Seed, "random seed")
	return cmd
}
