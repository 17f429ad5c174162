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
	"os"
	"strings"
)

// EnvPrefix 环境变量前缀，LoadConfig 会在其后追加下划线
const EnvPrefix = "CACHEKIT"

// EnvKey 返回配置键对应的环境变量名
//
// 例如：localCache.maxSize -> CACHEKIT_LOCALCACHE_MAXSIZE
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// ConfigDir 返回 CONFIG_PATH 指定的配置目录，未设置时返回 def
func ConfigDir(def string) string {
	if dir := os.Getenv(MountConfigFilePath); dir != "" {
		return dir
	}
	return def
}
