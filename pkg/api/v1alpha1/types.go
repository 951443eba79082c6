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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// GroupVersion is the apiVersion accepted in run config files.
	GroupVersion = "rsmt/v1alpha1"
	// Kind is the kind accepted in run config files.
	Kind = "SteinerRunConfig"
)

// +k8s:deepcopy-gen=true

// SteinerRunConfig configures one genetic search for a Steiner tree
type SteinerRunConfig struct {
	metav1.TypeMeta `json:",inline"`

	// PopulationSize is the number of chromosomes per generation
	PopulationSize *int `json:"populationSize,omitempty"`

	// Generations is the number of generations evolved after the initial one
	Generations *int `json:"generations,omitempty"`

	// Selection is the parent selection scheme: RouletteWheel or Tournament
	Selection string `json:"selection,omitempty"`

	// TournamentSize is the number of competitors per tournament
	TournamentSize int `json:"tournamentSize,omitempty"`

	// Crossover is the recombination operator: OnePoint, TwoPoint or Uniform
	Crossover string `json:"crossover,omitempty"`

	// CrossoverProbability is the chance a parent pair is recombined (pc)
	CrossoverProbability *float64 `json:"crossoverProbability,omitempty"`

	// MutationProbability is the per-bit chance of dropping a Steiner point (pm)
	MutationProbability *float64 `json:"mutationProbability,omitempty"`

	// Seed initializes the random source shared by every operator
	Seed *uint64 `json:"seed,omitempty"`

	// Prune removes non-branching Steiner points from the best chromosome
	Prune *bool `json:"prune,omitempty"`

	// WarmStart seeds the initial population with the greedy iterated
	// 1-Steiner construction
	WarmStart *bool `json:"warmStart,omitempty"`

	// Output controls the files written after a run
	Output *OutputConfig `json:"output,omitempty"`
}

// +k8s:deepcopy-gen=true

// OutputConfig lists optional report files
type OutputConfig struct {
	// ConvergencePlot is an HTML file for the cost history chart
	ConvergencePlot string `json:"convergencePlot,omitempty"`

	// LayoutPlot is an HTML file for the pin and Steiner point layout
	LayoutPlot string `json:"layoutPlot,omitempty"`

	// MetricsFile receives the Prometheus text dump of the run
	MetricsFile string `json:"metricsFile,omitempty"`
}
