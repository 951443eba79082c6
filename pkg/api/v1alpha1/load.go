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
	"os"

	"sigs.k8s.io/yaml"
)

// LoadConfig reads a SteinerRunConfig from a YAML or JSON file. Unknown
// fields are rejected. The result is defaulted but not validated.
func LoadConfig(path string) (*SteinerRunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run config: %w", err)
	}
	return DecodeConfig(data)
}

// DecodeConfig decodes and defaults a SteinerRunConfig.
func DecodeConfig(data []byte) (*SteinerRunConfig, error) {
	cfg := &SteinerRunConfig{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode run config: %w", err)
	}
	SetDefaults_SteinerRunConfig(cfg)
	return cfg, nil
}
