// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "fmt"

// TargetJar is the archive a target packages its output into.
type TargetJar struct {
	ArchiveFile string `json:"archiveFile"`
}

// Target is a compile destination for one platform.
type Target struct {
	Name                     string         `json:"name"`
	DisambiguationClassifier string         `json:"disambiguationClassifier"`
	Platform                 Platform       `json:"platform"`
	Compilations             []*Compilation `json:"compilations"`
	Jar                      TargetJar      `json:"jar"`
}

// NewTarget creates a target and binds every compilation to it. A
// compilation that already belongs to another target is a programming
// error.
func NewTarget(name, classifier string, platform Platform, compilations []*Compilation, jar TargetJar) *Target {
	t := &Target{
		Name:                     name,
		DisambiguationClassifier: classifier,
		Platform:                 platform,
		Compilations:             nonNil(compilations),
		Jar:                      jar,
	}
	for _, c := range t.Compilations {
		if c.target != nil {
			panic(fmt.Sprintf("compilation '%s' already belongs to target '%s'", c.Name, c.target.Name))
		}
		c.target = t
		c.TargetName = t.Name
	}
	return t
}

// Compilation returns the named compilation.
func (t *Target) Compilation(name string) (*Compilation, bool) {
	for _, c := range t.Compilations {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
