package extract

import (
	"context"
	"fmt"

	"github.com/vk/mppimport/internal/buildtool"
	"github.com/vk/mppimport/internal/capability"
	"github.com/vk/mppimport/internal/ctxlog"
	"github.com/vk/mppimport/internal/model"
	"github.com/vk/mppimport/internal/probe"
)

// pluginVersionAccessors is where a project reports the plugin version that
// configured it.
var pluginVersionAccessors = []string{"KotlinPluginVersion", "PluginVersion"}

// Builder produces the multiplatform model of a project.
type Builder struct {
	resolver     buildtool.DependencyResolver
	capabilities *capability.Registry
}

// NewBuilder creates a Builder. A nil registry selects capability.Default.
func NewBuilder(resolver buildtool.DependencyResolver, capabilities *capability.Registry) *Builder {
	if capabilities == nil {
		capabilities = capability.Default()
	}
	return &Builder{resolver: resolver, capabilities: capabilities}
}

// CanBuild reports whether the builder produces the named model type.
func (b *Builder) CanBuild(modelName string) bool {
	return modelName == model.Name
}

// Build assembles the model of project. A model name other than model.Name
// yields ErrUnsupportedModel. Any other failure is an *ImportError and no
// model is returned.
func (b *Builder) Build(ctx context.Context, modelName string, project buildtool.Project) (m *model.Model, err error) {
	if !b.CanBuild(modelName) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModel, modelName)
	}

	ctx, logger := ctxlog.With(ctx, "project", project.Name())
	logger.Debug("Building model.", "model", modelName)

	phase := PhaseCapabilities
	fail := func(err error) error {
		return &ImportError{Project: project.Name(), Phase: phase, Err: err}
	}
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fail(fmt.Errorf("panic: %v", r))
		}
	}()

	caps, err := b.capabilitiesFor(ctx, project)
	if err != nil {
		return nil, fail(err)
	}

	ext, ok := project.Extension(caps.Extension)
	if !ok {
		logger.Info("Project has no Kotlin extension; returning empty model.", "extension", caps.Extension)
		return model.New(nil, nil, model.ExtraFeatures{}), nil
	}
	x := newExtractor(caps, project, b.resolver)

	phase = PhaseSourceSets
	sourceSets, err := x.sourceSets(ctx, ext)
	if err != nil {
		return nil, fail(err)
	}

	phase = PhaseTargets
	targets, err := x.targets(ctx, ext, sourceSets)
	if err != nil {
		return nil, fail(err)
	}

	phase = PhaseAggregate
	Aggregate(sourceSets, targets)
	extra, err := x.extraFeatures(ext)
	if err != nil {
		return nil, fail(err)
	}

	phase = PhaseValidate
	result := model.New(sourceSets, targets, extra)
	if err := result.Validate(); err != nil {
		return nil, fail(err)
	}

	logger.Info("Model built.", "source_sets", len(result.SourceSets), "targets", len(result.Targets))
	return result, nil
}

func (b *Builder) capabilitiesFor(ctx context.Context, project buildtool.Project) (*capability.Set, error) {
	v, err := probe.Get[string](project, pluginVersionAccessors...)
	if err != nil {
		return nil, err
	}
	return b.capabilities.Lookup(ctx, v.OrElse("")), nil
}

// extraFeatures reads the experimental coroutines state when the extension
// exposes it.
func (x *extractor) extraFeatures(ext any) (model.ExtraFeatures, error) {
	experimental, err := probe.Get[any](ext, x.caps.Experimental...)
	if err != nil {
		return model.ExtraFeatures{}, err
	}
	exp, ok := experimental.Get()
	if !ok {
		return model.ExtraFeatures{}, nil
	}
	state, err := probe.Get[string](exp, x.caps.Coroutines...)
	if err != nil {
		return model.ExtraFeatures{}, err
	}
	return model.ExtraFeatures{CoroutinesState: state.OrElse("")}, nil
}
