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

const (
	// FileName 默认配置文件名
	FileName = "cachekit.yml"

	// MountConfigFilePath 指定配置目录的环境变量，容器部署时挂载配置使用
	MountConfigFilePath = "CONFIG_PATH"

	// DefaultMaxSize 与 localcache.DefaultMaxSize 保持一致
	DefaultMaxSize = 1024

	DefaultInitialCapacity = 10
)
