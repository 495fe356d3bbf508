package extract

import (
	"context"
	"fmt"

	"github.com/vk/mppimport/internal/buildtool"
	"github.com/vk/mppimport/internal/ctxlog"
	"github.com/vk/mppimport/internal/model"
	"github.com/vk/mppimport/internal/probe"
)

// dependencies resolves the configuration a compilation names through one
// of accessors and tags the result with scope. Every way the configuration
// can be unavailable yields no dependencies; only the resolver can fail.
func (x *extractor) dependencies(ctx context.Context, compilation any, accessors []string, scope model.Scope) ([]model.Dependency, error) {
	logger := ctxlog.FromContext(ctx).With("scope", scope)

	cfgName, err := probe.Get[string](compilation, accessors...)
	if err != nil {
		return nil, err
	}
	name, ok := cfgName.Get()
	if !ok || name == "" {
		logger.Debug("Compilation names no dependency configuration.")
		return nil, nil
	}

	cfg, ok := x.project.Configurations().FindByName(name)
	if !ok {
		logger.Debug("Dependency configuration not found.", "configuration", name)
		return nil, nil
	}
	if !cfg.CanBeResolved() {
		logger.Debug("Dependency configuration is not resolvable.", "configuration", name)
		return nil, nil
	}

	resolved, err := x.resolver.Resolve(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve configuration '%s': %w", name, err)
	}

	deps := make([]model.Dependency, 0, len(resolved))
	for _, d := range resolved {
		deps = append(deps, toModelDependency(d, scope))
	}
	logger.Debug("Dependencies resolved.", "configuration", name, "count", len(deps))
	return deps, nil
}

func toModelDependency(d buildtool.ExternalDependency, scope model.Scope) model.Dependency {
	var files []string
	if len(d.Files) > 0 {
		files = append(files, d.Files...)
	}
	return model.Dependency{
		ID:         d.ID(),
		Group:      d.Group,
		Name:       d.Name,
		Version:    d.Version,
		Classifier: d.Classifier,
		Files:      files,
		Scope:      scope,
	}
}
