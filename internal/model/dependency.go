// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

// Scope says when a dependency is needed.
type Scope string

const (
	ScopeCompile Scope = "COMPILE"
	ScopeRuntime Scope = "RUNTIME"
)

// Dependency is a resolved external dependency tagged with the scope of the
// configuration it was first found in.
type Dependency struct {
	// ID is the resolver identity; it decides equality.
	ID         string   `json:"id"`
	Group      string   `json:"group"`
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	Classifier string   `json:"classifier,omitempty"`
	Files      []string `json:"files,omitempty"`
	Scope      Scope    `json:"scope"`
}

// DependencySet is an insertion-ordered set of dependencies keyed by ID.
// The first occurrence of an ID wins, scope included.
type DependencySet struct {
	items []Dependency
	seen  map[string]struct{}
}

// Add appends deps whose IDs are not yet present.
func (s *DependencySet) Add(deps ...Dependency) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	for _, d := range deps {
		if _, dup := s.seen[d.ID]; dup {
			continue
		}
		s.seen[d.ID] = struct{}{}
		s.items = append(s.items, d)
	}
}

// Len returns the number of distinct dependencies.
func (s *DependencySet) Len() int { return len(s.items) }

// Items returns a copy of the dependencies in insertion order. It never
// returns nil.
func (s *DependencySet) Items() []Dependency {
	out := make([]Dependency, len(s.items))
	copy(out, s.items)
	return out
}
