package main

import (
	"fmt"
	"os"

	"dualnum/diff"
	"dualnum/sweep"

	"gopkg.in/yaml.v3"
)

// FileConfig 配置文件结构
//
//	sweep:
//	  title: damped wave
//	  from: 0
//	  to: 10
//	  steps: 400
//	newton:
//	  tolerance: 1e-12
//	  max_iterations: 100
//	  max_step: 10
type FileConfig struct {
	Sweep  sweep.Config `yaml:"sweep"`
	Newton diff.Config  `yaml:"newton"`
}

// DefaultFileConfig 返回默认配置
func DefaultFileConfig() FileConfig {
	return FileConfig{
		Sweep:  sweep.DefaultConfig(),
		Newton: diff.DefaultConfig(),
	}
}

// LoadConfig 读取 YAML 配置，未给出的字段保留默认值
func LoadConfig(path string) (FileConfig, error) {
	cfg := DefaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置 %s 失败: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置 %s 失败: %w", path, err)
	}
	return cfg, nil
}
