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
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"
	"github.com/openimsdk/tools/system/program"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/openimsdk/cachekit/pkg/common/config"
	"github.com/openimsdk/cachekit/pkg/common/prommetrics"
	"github.com/openimsdk/cachekit/version"
)

const (
	FlagConf = "config"
	FlagWait = "wait"

	// stdinConfig 作为 --config 的值时从标准输入读取配置
	stdinConfig = "-"

	processName = "cachekit"
)

// RootCmd 命令行入口，负责加载配置、初始化日志和监控
type RootCmd struct {
	Command  cobra.Command
	config   *config.Config
	registry *prometheus.Registry
}

func NewRootCmd() *RootCmd {
	r := &RootCmd{
		config:   config.Default(),
		registry: prometheus.NewRegistry(),
	}
	r.Command = cobra.Command{
		Use:           processName,
		Short:         "Bounded LRU cache and sparse int map toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.persistentPreRun(cmd)
		},
	}
	r.Command.PersistentFlags().StringP(FlagConf, "c", "", "path of config file, \"-\" reads yaml from stdin, default "+config.DefaultConfigPath("config"))
	r.Command.AddCommand(newLRUCmd(r), newSparseCmd(r), newVersionCmd())
	return r
}

func (r *RootCmd) Config() *config.Config {
	return r.config
}

func (r *RootCmd) persistentPreRun(cmd *cobra.Command) error {
	if err := r.initializeConfiguration(cmd); err != nil {
		return err
	}
	return r.initializeLogger()
}

func (r *RootCmd) initializeConfiguration(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString(FlagConf)
	if err != nil {
		return errs.Wrap(err)
	}
	if path == stdinConfig {
		return r.readConfig(cmd.InOrStdin())
	}
	if path == "" {
		path = config.DefaultConfigPath("config")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			// 没有配置文件时使用默认配置
			return r.config.Validate()
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	r.config = cfg
	return nil
}

// readConfig 从标准输入读取YAML配置，不支持环境变量覆盖
func (r *RootCmd) readConfig(in io.Reader) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return errs.WrapMsg(err, "read config from stdin failed")
	}
	cfg := config.Default()
	if err := config.ParseYAML(data, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.config = cfg
	return nil
}

func (r *RootCmd) initializeLogger() error {
	err := log.InitLoggerFromConfig(
		processName,
		processName,
		"", "",
		r.config.Log.RemainLogLevel,
		r.config.Log.IsStdout,
		r.config.Log.IsJson,
		r.config.Log.StorageLocation,
		r.config.Log.RemainRotationCount,
		r.config.Log.RotationTime,
		version.Version,
		r.config.Log.IsSimplify,
	)
	if err != nil {
		return errs.Wrap(err)
	}
	return nil
}

// startMetrics 启用监控时在后台提供 /metrics
func (r *RootCmd) startMetrics(ctx context.Context) error {
	if !r.config.Prometheus.Enable {
		return nil
	}
	listener, err := net.Listen("tcp", r.config.Prometheus.Addr)
	if err != nil {
		return errs.WrapMsg(err, "listen err", "addr", r.config.Prometheus.Addr)
	}
	log.ZInfo(ctx, "prometheus metrics listening", "addr", listener.Addr().String())
	go func() {
		defer func() {
			if e := recover(); e != nil {
				log.ZPanic(ctx, "prometheus server panic", errs.ErrPanic(e))
			}
		}()
		if err := prommetrics.Start(listener, r.registry); err != nil {
			log.ZError(ctx, "prometheus server stopped", err)
		}
	}()
	return nil
}

// waitSignal 阻塞直到收到 SIGTERM 或 SIGINT，用于保留 /metrics 供采集
func waitSignal(ctx context.Context) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigs)
	select {
	case <-sigs:
		program.SIGTERMExit()
	case <-ctx.Done():
	}
}

func (r *RootCmd) Execute() error {
	return r.Command.Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), processName, version.Version)
			return err
		},
	}
}
