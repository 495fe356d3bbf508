// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"fmt"
	"strings"
)

// Name is the model type name the importer answers to.
const Name = "KotlinMPPGradleModel"

// ExtraFeatures carries optional extension-level flags.
type ExtraFeatures struct {
	// CoroutinesState is the experimental coroutines setting, e.g. "enable".
	// Empty when the extension does not expose it.
	CoroutinesState string `json:"coroutinesState,omitempty"`
}

// Model is the root of an import.
type Model struct {
	SourceSets    []*SourceSet  `json:"sourceSets"`
	Targets       []*Target     `json:"targets"`
	ExtraFeatures ExtraFeatures `json:"extraFeatures"`
}

// New creates a root from built parts.
func New(sourceSets []*SourceSet, targets []*Target, extra ExtraFeatures) *Model {
	return &Model{
		SourceSets:    nonNil(sourceSets),
		Targets:       nonNil(targets),
		ExtraFeatures: extra,
	}
}

// SourceSet returns the named source set.
func (m *Model) SourceSet(name string) (*SourceSet, bool) {
	for _, s := range m.SourceSets {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Target returns the named target.
func (m *Model) Target(name string) (*Target, bool) {
	for _, t := range m.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Validate checks the root invariants: names are unique, every source set a
// compilation refers to exists, and every compilation is bound to the
// target that lists it.
func (m *Model) Validate() error {
	var errs []string

	sourceSets := make(map[string]struct{}, len(m.SourceSets))
	for _, s := range m.SourceSets {
		if _, dup := sourceSets[s.Name]; dup {
			errs = append(errs, fmt.Sprintf("duplicate source set '%s'", s.Name))
		}
		sourceSets[s.Name] = struct{}{}
	}

	targets := make(map[string]struct{}, len(m.Targets))
	owner := make(map[*Compilation]string)
	for _, t := range m.Targets {
		if _, dup := targets[t.Name]; dup {
			errs = append(errs, fmt.Sprintf("duplicate target '%s'", t.Name))
		}
		targets[t.Name] = struct{}{}

		for _, c := range t.Compilations {
			if prev, seen := owner[c]; seen {
				errs = append(errs, fmt.Sprintf("compilation '%s' is listed by targets '%s' and '%s'", c.Name, prev, t.Name))
			}
			owner[c] = t.Name
			if c.target != t {
				errs = append(errs, fmt.Sprintf("compilation '%s' of target '%s' is not bound to it", c.Name, t.Name))
			}
			for _, ss := range c.SourceSets {
				if _, ok := sourceSets[ss]; !ok {
					errs = append(errs, fmt.Sprintf("compilation '%s' of target '%s' refers to unknown source set '%s'", c.Name, t.Name, ss))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("model validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
