package extract

import (
	"context"
	"fmt"

	"github.com/vk/mppimport/internal/ctxlog"
	"github.com/vk/mppimport/internal/model"
	"github.com/vk/mppimport/internal/probe"
)

// targets reads every representable target of the extension.
func (x *extractor) targets(ctx context.Context, ext any, sourceSets []*model.SourceSet) ([]*model.Target, error) {
	logger := ctxlog.FromContext(ctx)

	container, err := probe.Get[[]any](ext, x.caps.Targets...)
	if err != nil {
		return nil, err
	}
	entries, ok := container.Get()
	if !ok {
		logger.Debug("Extension exposes no target container.")
		return []*model.Target{}, nil
	}

	byName := make(map[string]*model.SourceSet, len(sourceSets))
	for _, ss := range sourceSets {
		byName[ss.Name] = ss
	}

	result := make([]*model.Target, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		t, err := x.target(ctx, entry, byName)
		if err != nil {
			return nil, err
		}
		if t == nil {
			continue
		}
		if _, dup := seen[t.Name]; dup {
			logger.Debug("Skipping duplicate target.", "target", t.Name)
			continue
		}
		seen[t.Name] = struct{}{}
		result = append(result, t)
	}

	logger.Debug("Targets extracted.", "count", len(result), "entries", len(entries))
	return result, nil
}

// target returns nil when the target cannot be represented.
func (x *extractor) target(ctx context.Context, raw any, sourceSets map[string]*model.SourceSet) (*model.Target, error) {
	logger := ctxlog.FromContext(ctx)

	nameOpt, err := probe.Get[string](raw, x.caps.TargetName...)
	if err != nil {
		return nil, err
	}
	name, ok := nameOpt.Get()
	if !ok || name == "" {
		logger.Debug("Skipping target without a name.")
		return nil, nil
	}
	ctx, logger = ctxlog.With(ctx, "target", name)

	platformOpt, err := probe.Get[string](raw, x.caps.PlatformType...)
	if err != nil {
		return nil, fmt.Errorf("target '%s': %w", name, err)
	}
	compilationsOpt, err := probe.Get[[]any](raw, x.caps.Compilations...)
	if err != nil {
		return nil, fmt.Errorf("target '%s': %w", name, err)
	}
	classifier, hasClassifier, err := x.classifier(raw)
	if err != nil {
		return nil, fmt.Errorf("target '%s': %w", name, err)
	}

	platformID, hasPlatform := platformOpt.Get()
	rawCompilations, hasCompilations := compilationsOpt.Get()
	if !hasPlatform || !hasCompilations || !hasClassifier {
		logger.Debug("Skipping target: required accessor missing.",
			"has_platform", hasPlatform, "has_compilations", hasCompilations, "has_classifier", hasClassifier)
		return nil, nil
	}

	platform, ok := model.ParsePlatform(platformID)
	if !ok {
		logger.Debug("Skipping target: unrecognized platform.", "platform", platformID)
		return nil, nil
	}

	compilations := make([]*model.Compilation, 0, len(rawCompilations))
	for _, rc := range rawCompilations {
		c, err := x.compilation(ctx, rc, sourceSets)
		if err != nil {
			return nil, fmt.Errorf("target '%s': %w", name, err)
		}
		if c != nil {
			compilations = append(compilations, c)
		}
	}

	jar, ok, err := x.targetJar(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("target '%s': %w", name, err)
	}
	if !ok {
		return nil, nil
	}

	logger.Debug("Target extracted.", "platform", platform, "compilations", len(compilations))
	return model.NewTarget(name, classifier, platform, compilations, jar), nil
}

// classifier requires the accessor to exist; a null classifier (as on the
// metadata target) is the empty string.
func (x *extractor) classifier(raw any) (string, bool, error) {
	opt, exists, err := probe.GetNullable[string](raw, x.caps.DisambiguationClassifier...)
	if err != nil {
		return "", false, err
	}
	return opt.OrElse(""), exists, nil
}

// targetJar locates the archive produced by the target's artifacts task.
func (x *extractor) targetJar(ctx context.Context, raw any) (model.TargetJar, bool, error) {
	logger := ctxlog.FromContext(ctx)

	opt, err := probe.Get[string](raw, x.caps.ArtifactsTaskName...)
	if err != nil {
		return model.TargetJar{}, false, err
	}
	taskName, ok := opt.Get()
	if !ok || taskName == "" {
		logger.Debug("Skipping target: artifacts task name accessor missing.")
		return model.TargetJar{}, false, nil
	}

	task, ok, err := x.project.Tasks().FindByName(taskName)
	if err != nil {
		return model.TargetJar{}, false, fmt.Errorf("find task '%s': %w", taskName, err)
	}
	if !ok {
		logger.Debug("Skipping target: artifacts task not found.", "task", taskName)
		return model.TargetJar{}, false, nil
	}

	archive, err := probe.Get[string](task, x.caps.ArchiveFile...)
	if err != nil {
		return model.TargetJar{}, false, fmt.Errorf("task '%s': %w", taskName, err)
	}
	file, ok := archive.Get()
	if !ok {
		logger.Debug("Skipping target: artifacts task does not produce an archive.", "task", taskName)
		return model.TargetJar{}, false, nil
	}
	return model.TargetJar{ArchiveFile: file}, true, nil
}
