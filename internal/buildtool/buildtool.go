// Package buildtool declares the collaborator contracts through which the
// importer reads a build-tool project: its extensions, its task registry,
// its dependency configurations and the resolver that turns a configuration
// into external dependencies.
//
// The importer never depends on a concrete build tool. Everything below is
// satisfied either by a live host integration or by a recorded snapshot
// (see the snapshot package).
package buildtool

import (
	"context"
	"strings"
)

// Project is a handle to one configured build-tool project.
type Project interface {
	// Name is the project path used in diagnostics, e.g. ":app".
	Name() string
	// Extension returns the extension registered under name, or false.
	Extension(name string) (any, bool)
	Tasks() TaskRegistry
	Configurations() ConfigurationContainer
}

// TaskRegistry looks tasks up by name. A missing task is reported with
// ok=false; a non-nil error means the registry itself failed.
type TaskRegistry interface {
	FindByName(name string) (task Task, ok bool, err error)
}

// Task is a build task. The importer only reads named properties from it
// through the probe package.
type Task interface {
	Name() string
}

// ConfigurationContainer looks dependency configurations up by name.
type ConfigurationContainer interface {
	FindByName(name string) (Configuration, bool)
}

// Configuration is a named dependency configuration.
type Configuration interface {
	Name() string
	// CanBeResolved reports false for detached or deactivated configurations.
	CanBeResolved() bool
}

// DependencyResolver resolves a configuration into its external
// dependencies. It may block on artifact I/O. An empty result means
// "nothing to resolve"; an error is a genuine resolution failure.
type DependencyResolver interface {
	Resolve(ctx context.Context, cfg Configuration) ([]ExternalDependency, error)
}

// ExternalDependency is a resolved module dependency.
type ExternalDependency struct {
	Group      string
	Name       string
	Version    string
	Classifier string
	Files      []string
}

// ID is the resolver identity of the dependency. Two dependencies with the
// same ID are the same dependency regardless of the configuration that
// produced them.
func (d ExternalDependency) ID() string {
	parts := []string{d.Group, d.Name, d.Version}
	if d.Classifier != "" {
		parts = append(parts, d.Classifier)
	}
	return strings.Join(parts, ":")
}
