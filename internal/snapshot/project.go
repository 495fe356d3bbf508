package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/mppimport/internal/buildtool"
)

// Project is a recorded build-tool project.
type Project struct {
	name           string
	pluginVersion  string
	tasks          map[string]*Object
	configurations map[string]*Configuration
	extensions     map[string]*Object
}

var (
	_ buildtool.Project                = (*Project)(nil)
	_ buildtool.TaskRegistry           = taskRegistry{}
	_ buildtool.ConfigurationContainer = configurationContainer{}
	_ buildtool.DependencyResolver     = Resolver{}
)

// Name returns the project path.
func (p *Project) Name() string { return p.name }

// KotlinPluginVersion reports the recorded plugin version, if any.
func (p *Project) KotlinPluginVersion() (string, bool) {
	return p.pluginVersion, p.pluginVersion != ""
}

// Extension returns the named extension object.
func (p *Project) Extension(name string) (any, bool) {
	ext, ok := p.extensions[name]
	if !ok {
		return nil, false
	}
	return ext, true
}

// Tasks returns the task registry of the project.
func (p *Project) Tasks() buildtool.TaskRegistry { return taskRegistry(p.tasks) }

// Configurations returns the dependency configurations of the project.
func (p *Project) Configurations() buildtool.ConfigurationContainer {
	return configurationContainer(p.configurations)
}

type taskRegistry map[string]*Object

func (r taskRegistry) FindByName(name string) (buildtool.Task, bool, error) {
	t, ok := r[name]
	if !ok {
		return nil, false, nil
	}
	return t, true, nil
}

type configurationContainer map[string]*Configuration

func (c configurationContainer) FindByName(name string) (buildtool.Configuration, bool) {
	cfg, ok := c[name]
	if !ok {
		return nil, false
	}
	return cfg, true
}

// Configuration is a recorded dependency configuration together with the
// outcome of resolving it.
type Configuration struct {
	name         string
	resolvable   bool
	dependencies []buildtool.ExternalDependency
	failure      string
}

// Name returns the configuration name.
func (c *Configuration) Name() string { return c.name }

// CanBeResolved reports whether the configuration may be resolved.
func (c *Configuration) CanBeResolved() bool { return c.resolvable }

// Resolver replays recorded resolution results.
type Resolver struct{}

// ErrForeignConfiguration is returned when the resolver is handed a
// configuration that does not come from a snapshot.
var ErrForeignConfiguration = errors.New("configuration is not part of a snapshot")

// Resolve returns the recorded dependencies of cfg, or the recorded failure.
func (Resolver) Resolve(_ context.Context, cfg buildtool.Configuration) ([]buildtool.ExternalDependency, error) {
	c, ok := cfg.(*Configuration)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrForeignConfiguration, cfg.Name())
	}
	if c.failure != "" {
		return nil, fmt.Errorf("could not resolve all dependencies for configuration '%s': %s", c.name, c.failure)
	}
	out := make([]buildtool.ExternalDependency, len(c.dependencies))
	copy(out, c.dependencies)
	return out, nil
}

// parseCoordinates parses group:name:version[:classifier].
func parseCoordinates(s string) (buildtool.ExternalDependency, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return buildtool.ExternalDependency{}, fmt.Errorf("invalid dependency coordinates %q: want group:name:version[:classifier]", s)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return buildtool.ExternalDependency{}, fmt.Errorf("invalid dependency coordinates %q: empty segment", s)
		}
	}
	d := buildtool.ExternalDependency{Group: parts[0], Name: parts[1], Version: parts[2]}
	if len(parts) == 4 {
		d.Classifier = parts[3]
	}
	return d, nil
}
