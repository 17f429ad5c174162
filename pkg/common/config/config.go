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

package config

import (
	"github.com/openimsdk/tools/errs"
)

// Config cachekit的完整配置
type Config struct {
	LocalCache LocalCache `mapstructure:"localCache" yaml:"localCache"`
	Sparse     Sparse     `mapstructure:"sparse" yaml:"sparse"`
	Log        Log        `mapstructure:"log" yaml:"log"`
	Prometheus Prometheus `mapstructure:"prometheus" yaml:"prometheus"`
}

// LocalCache 有界LRU缓存配置
//
// MaxSize 是所有槽位的容量之和，容量单位由 SizeOf 函数决定，默认每个缓存项计为1。
// SlotNum 大于1时按key哈希分槽，每个槽位持有独立的锁。
// LinkSlotNum 为0时禁用key关联。
type LocalCache struct {
	MaxSize     int `mapstructure:"maxSize" yaml:"maxSize"`         // 最大容量
	SlotNum     int `mapstructure:"slotNum" yaml:"slotNum"`         // 槽位数量
	LinkSlotNum int `mapstructure:"linkSlotNum" yaml:"linkSlotNum"` // 关联分片数量
}

func (l LocalCache) Enable() bool {
	return l.MaxSize > 0 && l.SlotNum > 0
}

type Sparse struct {
	InitialCapacity int `mapstructure:"initialCapacity" yaml:"initialCapacity"`
}

// Log 日志配置
//
// 日志级别：1=debug, 2=info, 3=warn, 4=error
type Log struct {
	StorageLocation     string `mapstructure:"storageLocation" yaml:"storageLocation"`         // 日志存储位置
	RotationTime        uint   `mapstructure:"rotationTime" yaml:"rotationTime"`               // 日志轮转时间（小时）
	RemainRotationCount uint   `mapstructure:"remainRotationCount" yaml:"remainRotationCount"` // 保留轮转文件数量
	RemainLogLevel      int    `mapstructure:"remainLogLevel" yaml:"remainLogLevel"`           // 日志级别
	IsStdout            bool   `mapstructure:"isStdout" yaml:"isStdout"`                       // 是否输出到标准输出
	IsJson              bool   `mapstructure:"isJson" yaml:"isJson"`                           // 是否使用JSON格式
	IsSimplify          bool   `mapstructure:"isSimplify" yaml:"isSimplify"`                   // 是否使用简化格式
	WithStack           bool   `mapstructure:"withStack" yaml:"withStack"`                     // 是否包含堆栈信息
}

type Prometheus struct {
	Enable bool   `mapstructure:"enable" yaml:"enable"` // 是否启用监控
	Addr   string `mapstructure:"addr" yaml:"addr"`     // 监听地址，如 :9100
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		LocalCache: LocalCache{
			MaxSize:     DefaultMaxSize,
			SlotNum:     1,
			LinkSlotNum: 0,
		},
		Sparse: Sparse{
			InitialCapacity: DefaultInitialCapacity,
		},
		Log: Log{
			StorageLocation:     "./logs/",
			RotationTime:        24,
			RemainRotationCount: 2,
			RemainLogLevel:      6,
			IsStdout:            true,
		},
		Prometheus: Prometheus{
			Addr: ":9100",
		},
	}
}

// Validate 检查配置是否可以用于构建缓存
func (c *Config) Validate() error {
	if c.LocalCache.MaxSize <= 0 {
		return errs.ErrArgs.WrapMsg("localCache.maxSize must be positive", "maxSize", c.LocalCache.MaxSize)
	}
	if c.LocalCache.SlotNum <= 0 {
		return errs.ErrArgs.WrapMsg("localCache.slotNum must be positive", "slotNum", c.LocalCache.SlotNum)
	}
	if c.LocalCache.LinkSlotNum < 0 {
		return errs.ErrArgs.WrapMsg("localCache.linkSlotNum must not be negative", "linkSlotNum", c.LocalCache.LinkSlotNum)
	}
	if c.Sparse.InitialCapacity < 0 {
		return errs.ErrArgs.WrapMsg("sparse.initialCapacity must not be negative", "initialCapacity", c.Sparse.InitialCapacity)
	}
	if c.Prometheus.Enable && c.Prometheus.Addr == "" {
		return errs.ErrArgs.WrapMsg("prometheus.addr is required when prometheus is enabled")
	}
	return nil
}
