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
	"fmt"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
)

var (
	validSelections = []string{"RouletteWheel", "Tournament"}
	validCrossovers = []string{"OnePoint", "TwoPoint", "Uniform"}
)

// ValidateSteinerRunConfig validates a defaulted SteinerRunConfig and
// returns every problem found as one aggregate error wrapping
// framework.ErrInvalidConfiguration.
func ValidateSteinerRunConfig(cfg *SteinerRunConfig) error {
	var errs field.ErrorList

	if cfg.APIVersion != "" && cfg.APIVersion != GroupVersion {
		errs = append(errs, field.NotSupported(field.NewPath("apiVersion"), cfg.APIVersion, []string{GroupVersion}))
	}
	if cfg.Kind != "" && cfg.Kind != Kind {
		errs = append(errs, field.NotSupported(field.NewPath("kind"), cfg.Kind, []string{Kind}))
	}
	if p := cfg.PopulationSize; p != nil && *p < 1 {
		errs = append(errs, field.Invalid(field.NewPath("populationSize"), *p, "must be at least 1"))
	}
	if g := cfg.Generations; g != nil && *g < 0 {
		errs = append(errs, field.Invalid(field.NewPath("generations"), *g, "must be non-negative"))
	}
	if !contains(validSelections, cfg.Selection) {
		errs = append(errs, field.NotSupported(field.NewPath("selection"), cfg.Selection, validSelections))
	}
	if cfg.TournamentSize < 1 {
		errs = append(errs, field.Invalid(field.NewPath("tournamentSize"), cfg.TournamentSize, "must be at least 1"))
	} else if p := cfg.PopulationSize; cfg.Selection == "Tournament" && p != nil && *p > 0 && cfg.TournamentSize > *p {
		errs = append(errs, field.Invalid(field.NewPath("tournamentSize"), cfg.TournamentSize, "must not exceed populationSize"))
	}
	if !contains(validCrossovers, cfg.Crossover) {
		errs = append(errs, field.NotSupported(field.NewPath("crossover"), cfg.Crossover, validCrossovers))
	}
	if p := cfg.CrossoverProbability; p != nil && (*p < 0 || *p > 1) {
		errs = append(errs, field.Invalid(field.NewPath("crossoverProbability"), *p, "must be between 0 and 1"))
	}
	if p := cfg.MutationProbability; p != nil && (*p < 0 || *p > 1) {
		errs = append(errs, field.Invalid(field.NewPath("mutationProbability"), *p, "must be between 0 and 1"))
	}

	if agg := errs.ToAggregate(); agg != nil {
		return fmt.Errorf("%w: %w", framework.ErrInvalidConfiguration, agg)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
