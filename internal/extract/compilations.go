package extract

import (
	"context"
	"fmt"

	"github.com/vk/mppimport/internal/buildtool"
	"github.com/vk/mppimport/internal/ctxlog"
	"github.com/vk/mppimport/internal/model"
	"github.com/vk/mppimport/internal/probe"
)

// compilation builds one compilation. It returns nil when a capability the
// consumer relies on is missing: a half-filled compilation would read as one
// whose outputs or arguments are intentionally empty.
func (x *extractor) compilation(ctx context.Context, raw any, sourceSets map[string]*model.SourceSet) (*model.Compilation, error) {
	logger := ctxlog.FromContext(ctx)

	nameOpt, err := probe.Get[string](raw, x.caps.CompilationName...)
	if err != nil {
		return nil, err
	}
	name, ok := nameOpt.Get()
	if !ok || name == "" {
		logger.Debug("Skipping compilation without a name.")
		return nil, nil
	}
	ctx, logger = ctxlog.With(ctx, "compilation", name)

	members, ok, err := x.memberSourceSets(ctx, raw, sourceSets)
	if err != nil {
		return nil, fmt.Errorf("compilation '%s': %w", name, err)
	}
	if !ok {
		logger.Debug("Skipping compilation: source set accessor missing.")
		return nil, nil
	}

	task, ok, err := x.compileTask(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("compilation '%s': %w", name, err)
	}
	if !ok {
		return nil, nil
	}

	output, ok, err := x.output(raw, task)
	if err != nil {
		return nil, fmt.Errorf("compilation '%s': %w", name, err)
	}
	if !ok {
		logger.Debug("Skipping compilation: output descriptor missing.")
		return nil, nil
	}

	args, ok, err := x.arguments(task)
	if err != nil {
		return nil, fmt.Errorf("compilation '%s': %w", name, err)
	}
	if !ok {
		logger.Debug("Skipping compilation: compiler arguments missing.", "task", task.Name())
		return nil, nil
	}

	classpath, err := probe.ByRuntimeType[[]string](task, x.caps.ClasspathTypes, x.caps.ClasspathAccessor)
	if err != nil {
		return nil, fmt.Errorf("compilation '%s': %w", name, err)
	}

	var deps model.DependencySet
	compileDeps, err := x.dependencies(ctx, raw, x.caps.CompileConfigurationName, model.ScopeCompile)
	if err != nil {
		return nil, fmt.Errorf("compilation '%s': %w", name, err)
	}
	deps.Add(compileDeps...)
	runtimeDeps, err := x.dependencies(ctx, raw, x.caps.RuntimeConfigurationName, model.ScopeRuntime)
	if err != nil {
		return nil, fmt.Errorf("compilation '%s': %w", name, err)
	}
	deps.Add(runtimeDeps...)

	logger.Debug("Compilation extracted.", "source_sets", len(members), "dependencies", deps.Len())
	return model.NewCompilation(name, members, deps.Items(), output, args, classpath.OrElse(nil)), nil
}

// memberSourceSets resolves the compilation's source sets against the
// extracted ones. Names that were not extracted are dropped.
func (x *extractor) memberSourceSets(ctx context.Context, raw any, sourceSets map[string]*model.SourceSet) ([]string, bool, error) {
	opt, err := probe.Get[[]any](raw, x.caps.CompilationSourceSets...)
	if err != nil {
		return nil, false, err
	}
	entries, ok := opt.Get()
	if !ok {
		return nil, false, nil
	}

	logger := ctxlog.FromContext(ctx)
	members := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		name, ok, err := x.sourceSetRef(entry)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		if _, known := sourceSets[name]; !known {
			logger.Debug("Dropping reference to unknown source set.", "source_set", name)
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		members = append(members, name)
	}
	return members, true, nil
}

// sourceSetRef accepts either a bare name or a source set object.
func (x *extractor) sourceSetRef(entry any) (string, bool, error) {
	if name, ok := entry.(string); ok {
		return name, name != "", nil
	}
	opt, err := probe.Get[string](entry, x.caps.SourceSetName...)
	if err != nil {
		return "", false, err
	}
	name, ok := opt.Get()
	return name, ok && name != "", nil
}

// compileTask finds the compile task the compilation names.
func (x *extractor) compileTask(ctx context.Context, raw any) (buildtool.Task, bool, error) {
	logger := ctxlog.FromContext(ctx)

	opt, err := probe.Get[string](raw, x.caps.CompileTaskName...)
	if err != nil {
		return nil, false, err
	}
	taskName, ok := opt.Get()
	if !ok || taskName == "" {
		logger.Debug("Skipping compilation: compile task name accessor missing.")
		return nil, false, nil
	}

	task, ok, err := x.project.Tasks().FindByName(taskName)
	if err != nil {
		return nil, false, fmt.Errorf("find task '%s': %w", taskName, err)
	}
	if !ok {
		logger.Debug("Skipping compilation: compile task not found.", "task", taskName)
		return nil, false, nil
	}
	return task, true, nil
}

// output combines the compilation's output descriptor with the compile
// task's destination directory.
func (x *extractor) output(raw any, task buildtool.Task) (model.Output, bool, error) {
	descOpt, err := probe.Get[any](raw, x.caps.Output...)
	if err != nil {
		return model.Output{}, false, err
	}
	desc, ok := descOpt.Get()
	if !ok {
		return model.Output{}, false, nil
	}

	classes, err := probe.Get[[]string](desc, x.caps.ClassesDirs...)
	if err != nil {
		return model.Output{}, false, err
	}
	classesDirs, ok := classes.Get()
	if !ok {
		return model.Output{}, false, nil
	}

	resources, err := probe.Get[string](desc, x.caps.ResourcesDir...)
	if err != nil {
		return model.Output{}, false, err
	}
	dest, err := probe.Get[string](task, x.caps.DestinationDir...)
	if err != nil {
		return model.Output{}, false, err
	}

	return model.Output{
		ClassesDirs:    classesDirs,
		DestinationDir: dest.OrElse(""),
		ResourcesDir:   resources.OrElse(""),
	}, true, nil
}

// arguments reads the default and current serialized compiler arguments.
// Both are required.
func (x *extractor) arguments(task buildtool.Task) (model.Arguments, bool, error) {
	current, err := probe.Get[[]string](task, x.caps.CurrentArguments...)
	if err != nil {
		return model.Arguments{}, false, err
	}
	defaults, err := probe.Get[[]string](task, x.caps.DefaultArguments...)
	if err != nil {
		return model.Arguments{}, false, err
	}
	cur, okCur := current.Get()
	def, okDef := defaults.Get()
	if !okCur || !okDef {
		return model.Arguments{}, false, nil
	}
	return model.Arguments{Default: def, Current: cur}, true, nil
}
