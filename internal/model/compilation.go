// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "strings"

// Output locates what a compilation produces. DestinationDir and
// ResourcesDir are empty when the build does not report them.
type Output struct {
	ClassesDirs    []string `json:"classesDirs"`
	DestinationDir string   `json:"destinationDir,omitempty"`
	ResourcesDir   string   `json:"resourcesDir,omitempty"`
}

// Arguments holds the compiler arguments a consumer diffs to tell what the
// build configured on top of the defaults.
type Arguments struct {
	Default []string `json:"default"`
	Current []string `json:"current"`
}

// Compilation is one compile unit of a target.
type Compilation struct {
	Name                string       `json:"name"`
	SourceSets          []string     `json:"sourceSets"`
	Dependencies        []Dependency `json:"dependencies"`
	Output              Output       `json:"output"`
	Arguments           Arguments    `json:"arguments"`
	DependencyClasspath []string     `json:"dependencyClasspath"`

	// TargetName mirrors the owning target for serialized consumers.
	TargetName string `json:"target"`

	target *Target
}

// NewCompilation creates a compilation that is not yet bound to a target.
func NewCompilation(name string, sourceSets []string, deps []Dependency, out Output, args Arguments, classpath []string) *Compilation {
	out.ClassesDirs = cloneNonNil(out.ClassesDirs)
	args.Default = cloneNonNil(args.Default)
	args.Current = cloneNonNil(args.Current)
	return &Compilation{
		Name:                name,
		SourceSets:          cloneNonNil(sourceSets),
		Dependencies:        cloneNonNil(deps),
		Output:              out,
		Arguments:           args,
		DependencyClasspath: cloneNonNil(classpath),
	}
}

// Target returns the owning target, or nil before NewTarget has run.
func (c *Compilation) Target() *Target { return c.target }

// Platform is the platform of the owning target.
func (c *Compilation) Platform() Platform {
	if c.target == nil {
		return PlatformCommon
	}
	return c.target.Platform
}

// IsTestModule classifies the compilation by name: "test" and camel-cased
// names ending in Test ("unitTest", "debugAndroidTest") are test
// compilations.
func (c *Compilation) IsTestModule() bool {
	return c.Name == testCompilationName || strings.HasSuffix(c.Name, "Test")
}

const testCompilationName = "test"
