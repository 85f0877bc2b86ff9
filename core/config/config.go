package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/LogicCuteGuy/WASMRS2USharp-sub001/core/logger"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ProjectName string   `yaml:"project_name"`
	Behaviors   string   `yaml:"behaviors"`
	Codegen     Codegen  `yaml:"codegen"`
	Compiler    Compiler `yaml:"compiler"`
}

type Codegen struct {
	Output    string    `yaml:"output"`
	Namespace string    `yaml:"namespace"`
	Splitting Splitting `yaml:"splitting"`
}

type Splitting struct {
	// Strategy is one of "by-unit", "by-namespace" or "by-size".
	Strategy   string `yaml:"strategy"`
	SizeBudget int    `yaml:"size_budget"`
}

type Compiler struct {
	WarningsAsErrors bool `yaml:"warnings_as_errors"`
	// ToleratedCycles keeps the analysis running on cyclic graphs so the
	// full cycle report can be rendered. Code generation still refuses them.
	ToleratedCycles bool `yaml:"tolerated_cycles"`
}

func Default() *Config {
	return &Config{
		ProjectName: "usharp-project",
		Behaviors:   "behaviors.yaml",
		Codegen: Codegen{
			Output:    "UdonGenerated",
			Namespace: "UdonGenerated",
			Splitting: Splitting{
				Strategy:   "by-unit",
				SizeBudget: 400,
			},
		},
	}
}

func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot determine working dir: %w", err)
	}

	paths := []string{
		filepath.Join(wd, "usharp.yaml"),
	}

	var filePath string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			filePath = p
			break
		}
	}

	if filePath == "" {
		logger.Debug("No config file found, using default config")
		config := Default()
		return config, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	logger.Debug("Config file found: %s", filePath)
	logger.Debug("Config: %+v", cfg)

	return cfg, nil
}
