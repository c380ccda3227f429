package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flowml/flowpath/flow"
)

// fileConfig is the YAML form of a flow.Config.
type fileConfig struct {
	Sigma         float64 `yaml:"sigma"`
	DiffusionForm string  `yaml:"diffusion_form"`
	UseBlurring   bool    `yaml:"use_blurring"`
	BlurSigmaMax  float64 `yaml:"blur_sigma_max"`
	BlurUpscale   int     `yaml:"blur_upscale"`
}

// loadConfig reads a flow.Config from a YAML file. An empty path returns
// the default configuration.
func loadConfig(path string) (flow.Config, error) {
	cfg := flow.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg.Sigma = fc.Sigma
	cfg.UseBlurring = fc.UseBlurring
	if fc.BlurSigmaMax != 0 {
		cfg.BlurSigmaMax = fc.BlurSigmaMax
	}
	if fc.BlurUpscale != 0 {
		cfg.BlurUpscale = fc.BlurUpscale
	}
	if fc.DiffusionForm != "" {
		form, err := flow.ParseDiffusionForm(fc.DiffusionForm)
		if err != nil {
			return cfg, fmt.Errorf("config %q: %w", path, err)
		}
		cfg.DiffusionForm = form
	}

	return cfg, nil
}
