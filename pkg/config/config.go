// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/consensys/go-qasm/pkg/optimizer"
	"github.com/consensys/go-qasm/pkg/transpiler"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the settings read from a configuration file.  Any setting not
// given in the file retains its default value.
type Config struct {
	// OptimizationLevel to use when none is given on the command line.
	OptimizationLevel uint `yaml:"optimization_level"`
	// NumQubits available (0 means the circuit's own qubit count).
	NumQubits uint `yaml:"num_qubits,omitempty"`
	// TargetDepth requested (0 means none).
	TargetDepth uint `yaml:"target_depth,omitempty"`
	// Pipeline names a template to use instead of the optimisation level's.
	Pipeline string `yaml:"pipeline,omitempty"`
	// Pipelines defines additional pipeline templates.
	Pipelines []Pipeline `yaml:"pipelines,omitempty"`
}

// Pipeline defines a pipeline template in terms of named passes.
type Pipeline struct {
	Name   string  `yaml:"name"`
	Stages []Stage `yaml:"stages"`
}

// Stage defines one stage of a pipeline template.
type Stage struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Passes      []string `yaml:"passes"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{OptimizationLevel: optimizer.DEFAULT_LEVEL}
}

// Load reads a configuration file.  Unknown fields are rejected.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading configuration file %s", filename)
	}
	//
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading configuration file %s", filename)
	}
	//
	log.Debugf("loaded configuration from %s", filename)
	//
	return cfg, nil
}

// Parse decodes a configuration from its YAML form.  An empty document gives
// the default configuration.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}
	//
	return cfg, nil
}

// Validate checks the settings of this configuration are sensible.  Pass names
// are only checked when the pipelines are registered.
func (c *Config) Validate() error {
	if c.OptimizationLevel > optimizer.MAX_LEVEL {
		return errors.Errorf("invalid optimization_level %d (max %d)", c.OptimizationLevel, optimizer.MAX_LEVEL)
	}
	//
	names := make(map[string]bool)
	//
	for i, p := range c.Pipelines {
		if p.Name == "" {
			return errors.Errorf("pipeline #%d has no name", i+1)
		} else if optimizer.IsBuiltinTemplate(p.Name) {
			return errors.Errorf("pipeline %s would replace a built-in template", p.Name)
		} else if names[p.Name] {
			return errors.Errorf("duplicate pipeline %s", p.Name)
		}
		//
		names[p.Name] = true
		//
		for j, s := range p.Stages {
			if s.Name == "" {
				return errors.Errorf("stage #%d of pipeline %s has no name", j+1, p.Name)
			}
		}
	}
	//
	return nil
}

// Register the pipeline templates defined by this configuration with a given
// manager.  This fails if any pipeline refers to an unknown pass.
func (c *Config) Register(manager *transpiler.Manager) error {
	for _, p := range c.Pipelines {
		spec := transpiler.TemplateSpec{Name: p.Name}
		//
		for _, s := range p.Stages {
			spec.Stages = append(spec.Stages, transpiler.StageSpec{
				Name: s.Name, Description: s.Description, Passes: s.Passes})
		}
		//
		if err := manager.RegisterTemplateSpec(spec); err != nil {
			return err
		}
	}
	//
	return nil
}

// Engine returns the engine settings given by this configuration.
func (c *Config) Engine() optimizer.Config {
	return optimizer.Config{
		Level:       c.OptimizationLevel,
		NumQubits:   c.NumQubits,
		TargetDepth: c.TargetDepth,
		Pipeline:    c.Pipeline,
	}
}
