package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/decker502/platformer/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// ReadDataFile 读取数据文件（配置、脚本、音效）
// embedded 包已初始化时从嵌入资源读取，否则直接读取磁盘文件
func ReadDataFile(path string) ([]byte, error) {
	if embedded.IsInitialized() {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// GlobDataFiles 匹配数据文件，规则同 ReadDataFile
func GlobDataFiles(pattern string) ([]string, error) {
	if embedded.IsInitialized() {
		return embedded.Glob(pattern)
	}
	return filepath.Glob(pattern)
}

// decodeYAML 读取并解析 YAML 文件到 out
func decodeYAML(path, what string, out any) error {
	data, err := ReadDataFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", what, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", what, err)
	}
	return nil
}
