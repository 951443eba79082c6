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

// Package options provides the flags used by the rsmt run command
package options

import (
	"github.com/spf13/pflag"
	"k8s.io/utils/ptr"

	"github.com/mihai-snyk/rsmt/pkg/api/v1alpha1"
	"github.com/mihai-snyk/rsmt/pkg/tracing"
)

// RunOptions holds everything the run command can be told on its command line.
type RunOptions struct {
	ConfigFile string

	PopulationSize       int
	Generations          int
	Selection            string
	TournamentSize       int
	Crossover            string
	CrossoverProbability float64
	MutationProbability  float64
	Seed                 uint64
	Prune                bool
	WarmStart            bool

	ConvergencePlot string
	LayoutPlot      string
	MetricsFile     string

	Tracing tracing.Config
}

// NewRunOptions returns options preset to the config defaults.
func NewRunOptions() *RunOptions {
	return &RunOptions{
		PopulationSize:       v1alpha1.DefaultPopulationSize,
		Generations:          v1alpha1.DefaultGenerations,
		Selection:            v1alpha1.DefaultSelection,
		TournamentSize:       v1alpha1.DefaultTournamentSize,
		Crossover:            v1alpha1.DefaultCrossover,
		CrossoverProbability: v1alpha1.DefaultCrossoverProbability,
		MutationProbability:  v1alpha1.DefaultMutationProbability,
		Seed:                 v1alpha1.DefaultSeed,
		Prune:                true,
	}
}

// AddFlags adds flags for the run command to the specified FlagSet
func (o *RunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "SteinerRunConfig file (YAML or JSON); flags set explicitly override it")
	fs.IntVarP(&o.PopulationSize, "population-size", "p", o.PopulationSize, "Number of chromosomes per generation")
	fs.IntVarP(&o.Generations, "generations", "g", o.Generations, "Number of generations evolved after the initial one")
	fs.StringVar(&o.Selection, "selection", o.Selection, "Parent selection scheme: RouletteWheel or Tournament")
	fs.IntVar(&o.TournamentSize, "tournament-size", o.TournamentSize, "Competitors per tournament")
	fs.StringVar(&o.Crossover, "crossover", o.Crossover, "Crossover operator: OnePoint, TwoPoint or Uniform")
	fs.Float64Var(&o.CrossoverProbability, "crossover-probability", o.CrossoverProbability, "Probability a parent pair is recombined")
	fs.Float64Var(&o.MutationProbability, "mutation-probability", o.MutationProbability, "Per-bit probability of dropping a Steiner point")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "Random seed")
	fs.BoolVar(&o.Prune, "prune", o.Prune, "Remove Steiner points that do not branch the tree")
	fs.BoolVar(&o.WarmStart, "warm-start", o.WarmStart, "Seed the initial population with the greedy iterated 1-Steiner tree")
	fs.StringVar(&o.ConvergencePlot, "convergence-plot", o.ConvergencePlot, "Write an HTML chart of the best cost per generation to this file")
	fs.StringVar(&o.LayoutPlot, "layout-plot", o.LayoutPlot, "Write an HTML chart of the final layout to this file")
	fs.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "Write Prometheus metrics in text format to this file after the run")
	fs.StringVar(&o.Tracing.Endpoint, "otel-collector-endpoint", o.Tracing.Endpoint, "OTLP gRPC collector endpoint; tracing is off when empty")
	fs.BoolVar(&o.Tracing.Insecure, "otel-insecure", o.Tracing.Insecure, "Connect to the collector without TLS")
	fs.Float64Var(&o.Tracing.SampleRatio, "otel-sample-ratio", 1, "Fraction of runs traced")
}

// Config loads ConfigFile, if any, and applies the flags that were set on fs.
// The result is defaulted but not validated.
func (o *RunOptions) Config(fs *pflag.FlagSet) (*v1alpha1.SteinerRunConfig, error) {
	cfg := &v1alpha1.SteinerRunConfig{}
	if o.ConfigFile != "" {
		loaded, err := v1alpha1.LoadConfig(o.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Without a config file every flag applies, so defaults come from the flags.
	set := func(name string) bool {
		return o.ConfigFile == "" || fs.Changed(name)
	}
	if set("population-size") {
		cfg.PopulationSize = ptr.To(o.PopulationSize)
	}
	if set("generations") {
		cfg.Generations = ptr.To(o.Generations)
	}
	if set("selection") {
		cfg.Selection = o.Selection
	}
	if set("tournament-size") {
		cfg.TournamentSize = o.TournamentSize
	}
	if set("crossover") {
		cfg.Crossover = o.Crossover
	}
	if set("crossover-probability") {
		cfg.CrossoverProbability = ptr.To(o.CrossoverProbability)
	}
	if set("mutation-probability") {
		cfg.MutationProbability = ptr.To(o.MutationProbability)
	}
	if set("seed") {
		cfg.Seed = ptr.To(o.Seed)
	}
	if set("prune") {
		cfg.Prune = ptr.To(o.Prune)
	}
	if set("warm-start") {
		cfg.WarmStart = ptr.To(o.WarmStart)
	}

	if cfg.Output == nil {
		cfg.Output = &v1alpha1.OutputConfig{}
	}
	if o.ConvergencePlot != "" {
		cfg.Output.ConvergencePlot = o.ConvergencePlot
	}
	if o.LayoutPlot != "" {
		cfg.Output.LayoutPlot = o.LayoutPlot
	}
	if o.MetricsFile != "" {
		cfg.Output.MetricsFile = o.MetricsFile
	}

	v1alpha1.SetDefaults_SteinerRunConfig(cfg)
	return cfg, nil
}
