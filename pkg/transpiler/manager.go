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
package transpiler

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Plugin is the extension point for third-party passes.  A plugin exposes a
// set of pass factories which are registered with a manager on request.
type Plugin interface {
	Passes() []Factory
}

// PluginFunc adapts a function into a plugin.
type PluginFunc func() []Factory

// Passes returns the factories provided by this plugin.
func (f PluginFunc) Passes() []Factory {
	return f()
}

// Manager is the registry of available passes, pipeline templates and plugins.
// A single manager is typically constructed at startup and then passed to
// whichever components need it.  It is safe for concurrent use.
type Manager struct {
	mutex     sync.RWMutex
	passes    map[string]Factory
	templates map[string]*Pipeline
	plugins   map[string]Plugin
}

// NewManager constructs an (initially empty) manager.
func NewManager() *Manager {
	return &Manager{
		passes:    make(map[string]Factory),
		templates: make(map[string]*Pipeline),
		plugins:   make(map[string]Plugin),
	}
}

// RegisterPass makes a kind of pass available by name, replacing any existing
// registration with the same name.
func (m *Manager) RegisterPass(factory Factory) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	//
	m.passes[factory.Name] = factory
	log.Debugf("registered pass %s", factory.Name)
}

// PassFactory looks up a registered kind of pass by name.
func (m *Manager) PassFactory(name string) (Factory, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	//
	f, ok := m.passes[name]
	//
	return f, ok
}

// Passes returns all registered kinds of pass, sorted by name.
func (m *Manager) Passes() []Factory {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	//
	var factories []Factory
	for _, name := range slices.Sorted(maps.Keys(m.passes)) {
		factories = append(factories, m.passes[name])
	}
	//
	return factories
}

// CreatePass instantiates a registered pass by name.  This never fails
// outright: when the name is unknown, the pass is abstract, or the constructor
// fails, the problem is logged and nil returned.
func (m *Manager) CreatePass(name string, args Args) Pass {
	factory, ok := m.PassFactory(name)
	//
	if !ok {
		log.Errorf("pass not found: %s", name)
		return nil
	} else if factory.IsAbstract() {
		log.Errorf("cannot instantiate abstract pass %s", name)
		return nil
	}
	//
	pass, err := factory.New(args)
	if err != nil {
		log.Errorf("error creating pass %s: %s", name, err)
		return nil
	}
	//
	return pass
}

// RegisterTemplate registers a named pipeline template, replacing any existing
// template with the same name.
func (m *Manager) RegisterTemplate(name string, pipeline *Pipeline) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	//
	m.templates[name] = pipeline
	log.Debugf("registered pipeline template %s", name)
}

// Template looks up a registered pipeline template.
func (m *Manager) Template(name string) (*Pipeline, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	//
	p, ok := m.templates[name]
	//
	return p, ok
}

// Templates returns the names of all registered templates, sorted.
func (m *Manager) Templates() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	//
	return slices.Sorted(maps.Keys(m.templates))
}

// CreatePipeline creates a new pipeline from a named template.  The stages
// and the pass registry of the template are copied, such that changes to the
// new pipeline are not visible in the template.  Stateless passes are shared
// between the two, whilst those implementing Cloner are cloned.  If no name is
// given, or the template is unknown, an empty pipeline is returned.
func (m *Manager) CreatePipeline(template string) *Pipeline {
	if template == "" {
		return NewPipeline("")
	}
	//
	t, ok := m.Template(template)
	if !ok {
		log.Warnf("pipeline template not found: %s, creating empty pipeline", template)
		return NewPipeline(template)
	}
	//
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	//
	return t.clone()
}

// AddPlugin makes a plugin available for loading under a given name.
func (m *Manager) AddPlugin(name string, plugin Plugin) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	//
	m.plugins[name] = plugin
}

// LoadPasses registers every concrete pass provided by the named plugin,
// returning how many were registered.  Abstract factories are skipped.  An
// unknown plugin is logged and loads nothing.
func (m *Manager) LoadPasses(plugin string) int {
	m.mutex.RLock()
	p, ok := m.plugins[plugin]
	m.mutex.RUnlock()
	//
	if !ok {
		log.Errorf("error loading plugin %s: not found", plugin)
		return 0
	}
	//
	count := 0
	//
	for _, factory := range p.Passes() {
		if !factory.IsAbstract() {
			m.RegisterPass(factory)
			count++
		}
	}
	//
	log.Infof("loaded %d passes from plugin %s", count, plugin)
	//
	return count
}

// TemplateSpec describes a pipeline template in terms of the names of its
// passes, as found in configuration files.
type TemplateSpec struct {
	Name   string
	Stages []StageSpec
}

// StageSpec describes one stage of a template.
type StageSpec struct {
	Name        string
	Description string
	Passes      []string
}

// RegisterTemplateSpec builds a template from its description and registers
// it.  Every registered pass is made available in the template's registry.
// Unlike CreatePass, an unknown pass name here is an error.
func (m *Manager) RegisterTemplateSpec(spec TemplateSpec) error {
	pipeline := NewPipeline(spec.Name)
	//
	for _, f := range m.Passes() {
		pipeline.RegisterPass(f)
	}
	//
	for _, s := range spec.Stages {
		stage := pipeline.CreateStage(s.Name, s.Description)
		//
		for _, name := range s.Passes {
			pass := m.CreatePass(name, nil)
			if pass == nil {
				return fmt.Errorf("template %s: unknown pass \"%s\" in stage %s", spec.Name, name, s.Name)
			}
			//
			stage.AddPass(pass)
		}
	}
	//
	m.RegisterTemplate(spec.Name, pipeline)
	//
	return nil
}
