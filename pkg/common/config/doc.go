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

/*
Package config 提供cachekit的配置管理功能

配置分为四个部分：

  - LocalCache: 有界LRU缓存的容量、槽位数和关联分片数
  - Sparse: 稀疏整型映射的初始容量
  - Log: 日志输出、轮转和级别，字段与 openimsdk/tools/log 的初始化参数一一对应
  - Prometheus: 是否暴露 /metrics 及监听地址

# 加载方式

LoadConfig 使用viper读取配置文件，并允许环境变量覆盖：

	var cfg config.Config
	err := config.LoadConfig("config/cachekit.yml", config.EnvPrefix, &cfg)

环境变量以 CACHEKIT_ 开头，配置键中的点号替换为下划线：

	export CACHEKIT_LOCALCACHE_MAXSIZE=4096

ParseYAML 直接解析内存中的YAML内容，适合测试和内嵌配置。
*/
package config // import "github.com/openimsdk/cachekit/pkg/common/config"
