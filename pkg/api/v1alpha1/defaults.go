/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"
)

const (
	DefaultPopulationSize       = 200
	DefaultGenerations          = 30
	DefaultSelection            = "Tournament"
	DefaultTournamentSize       = 2
	DefaultCrossover            = "OnePoint"
	DefaultCrossoverProbability = 1.0
	DefaultMutationProbability  = 0.1
	DefaultSeed                 = uint64(1)
)

// NewDefaultSteinerRunConfig returns a fully defaulted config.
func NewDefaultSteinerRunConfig() *SteinerRunConfig {
	cfg := &SteinerRunConfig{}
	SetDefaults_SteinerRunConfig(cfg)
	return cfg
}

func SetDefaults_SteinerRunConfig(cfg *SteinerRunConfig) {
	klog.V(5).InfoS("Setting defaults", "kind", Kind)

	if cfg.APIVersion == "" {
		cfg.APIVersion = GroupVersion
	}
	if cfg.Kind == "" {
		cfg.Kind = Kind
	}
	if cfg.PopulationSize == nil {
		cfg.PopulationSize = ptr.To(DefaultPopulationSize)
	}
	if cfg.Generations == nil {
		cfg.Generations = ptr.To(DefaultGenerations)
	}
	if cfg.Selection == "" {
		cfg.Selection = DefaultSelection
	}
	if cfg.TournamentSize == 0 {
		cfg.TournamentSize = DefaultTournamentSize
	}
	if cfg.Crossover == "" {
		cfg.Crossover = DefaultCrossover
	}
	if cfg.CrossoverProbability == nil {
		cfg.CrossoverProbability = ptr.To(DefaultCrossoverProbability)
	}
	if cfg.MutationProbability == nil {
		cfg.MutationProbability = ptr.To(DefaultMutationProbability)
	}
	if cfg.Seed == nil {
		cfg.Seed = ptr.To(DefaultSeed)
	}
	if cfg.Prune == nil {
		cfg.Prune = ptr.To(true)
	}
	if cfg.WarmStart == nil {
		cfg.WarmStart = ptr.To(false)
	}
	if cfg.Output == nil {
		cfg.Output = &OutputConfig{}
	}
}
