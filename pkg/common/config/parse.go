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
	"path/filepath"

	"github.com/openimsdk/tools/errs"
	"gopkg.in/yaml.v3"
)

// ParseYAML 解析YAML内容到config，不读取环境变量
func ParseYAML(data []byte, config any) error {
	if err := yaml.Unmarshal(data, config); err != nil {
		return errs.WrapMsg(err, "unmarshal yaml error")
	}
	return nil
}

// DefaultConfigPath 返回默认配置文件路径
//
// 优先使用 CONFIG_PATH 环境变量指定的目录，否则使用 dir。
func DefaultConfigPath(dir string) string {
	return filepath.Join(ConfigDir(dir), FileName)
}
