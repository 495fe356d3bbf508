// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "slices"

// SourceSet is a named group of source and resource directories.
type SourceSet struct {
	Name         string   `json:"name"`
	SourceDirs   []string `json:"sourceDirs"`
	ResourceDirs []string `json:"resourceDirs"`

	Platform     Platform     `json:"platform"`
	Dependencies []Dependency `json:"dependencies"`
	IsTestModule bool         `json:"isTestModule"`
}

// NewSourceSet creates a source set with the deferred fields at their
// defaults: common platform, no dependencies, not a test module.
func NewSourceSet(name string, sourceDirs, resourceDirs []string) *SourceSet {
	return &SourceSet{
		Name:         name,
		SourceDirs:   cloneNonNil(sourceDirs),
		ResourceDirs: cloneNonNil(resourceDirs),
		Platform:     PlatformCommon,
		Dependencies: []Dependency{},
	}
}

// Aggregate is what the compilations referencing a source set say about it.
type Aggregate struct {
	Platform     Platform
	Dependencies []Dependency
	IsTestModule bool
}

// Finalize writes the aggregated facts into the source set.
func (s *SourceSet) Finalize(a Aggregate) {
	s.Platform = a.Platform
	s.Dependencies = cloneNonNil(a.Dependencies)
	s.IsTestModule = a.IsTestModule
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// cloneNonNil copies in so the model never aliases slices owned by the
// build graph.
func cloneNonNil[T any](in []T) []T {
	return nonNil(slices.Clone(in))
}
