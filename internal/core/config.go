// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Weights holds the fully-resolved objective weights for one optimization run.
type Weights struct {
	Continuity      float64
	Skill           float64
	Geography       float64
	WorkloadBalance float64
}

// DefaultWeights returns the documented default weight set.
func DefaultWeights() Weights {
	return Weights{
		Continuity:      0.30,
		Skill:           0.40,
		Geography:       0.20,
		WorkloadBalance: 0.10,
	}
}

// WeightConfig is the partial weight set as it appears in requests and in the
// optional weights file. Nil fields fall back to the base weights.
type WeightConfig struct {
	Continuity      *float64 `json:"Continuity_Weight" yaml:"continuity_weight"`
	Skill           *float64 `json:"Skill_Weight" yaml:"skill_weight"`
	Geography       *float64 `json:"Geography_Weight" yaml:"geography_weight"`
	WorkloadBalance *float64 `json:"Workload_Balance_Weight" yaml:"workload_balance_weight"`
}

// Resolve merges this config into the given base weights.
func (wc WeightConfig) Resolve(base Weights) Weights {
	result := base
	if wc.Continuity != nil {
		result.Continuity = *wc.Continuity
	}
	if wc.Skill != nil {
		result.Skill = *wc.Skill
	}
	if wc.Geography != nil {
		result.Geography = *wc.Geography
	}
	if wc.WorkloadBalance != nil {
		result.WorkloadBalance = *wc.WorkloadBalance
	}
	return result
}

// LoadWeightsFile reads a YAML weights file and merges it over the documented
// defaults. An empty path returns the defaults unchanged.
func LoadWeightsFile(path string) (Weights, error) {
	weights := DefaultWeights()
	if path == "" {
		return weights, nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, fmt.Errorf("cannot read weights file: %w", err)
	}
	var wc WeightConfig
	err = yaml.UnmarshalStrict(buf, &wc)
	if err != nil {
		return Weights{}, fmt.Errorf("cannot parse weights file %s: %w", path, err)
	}
	return wc.Resolve(weights), nil
}
