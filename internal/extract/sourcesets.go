package extract

import (
	"context"
	"fmt"

	"github.com/vk/mppimport/internal/ctxlog"
	"github.com/vk/mppimport/internal/model"
	"github.com/vk/mppimport/internal/probe"
)

// sourceSets reads every Kotlin-aware source set of the extension in
// container order. A container the extension does not expose means the
// project has no source sets.
func (x *extractor) sourceSets(ctx context.Context, ext any) ([]*model.SourceSet, error) {
	logger := ctxlog.FromContext(ctx)

	container, err := probe.Get[[]any](ext, x.caps.SourceSets...)
	if err != nil {
		return nil, err
	}
	entries, ok := container.Get()
	if !ok {
		logger.Debug("Extension exposes no source set container.")
		return []*model.SourceSet{}, nil
	}

	result := make([]*model.SourceSet, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		ss, err := x.sourceSet(entry)
		if err != nil {
			return nil, fmt.Errorf("source set #%d: %w", i, err)
		}
		if ss == nil {
			logger.Debug("Skipping source set without Kotlin accessors.", "index", i)
			continue
		}
		if _, dup := seen[ss.Name]; dup {
			logger.Debug("Skipping duplicate source set.", "source_set", ss.Name)
			continue
		}
		seen[ss.Name] = struct{}{}
		result = append(result, ss)
	}

	logger.Debug("Source sets extracted.", "count", len(result), "entries", len(entries))
	return result, nil
}

// sourceSet returns nil when the entry is not a Kotlin source set.
func (x *extractor) sourceSet(entry any) (*model.SourceSet, error) {
	name, err := probe.Get[string](entry, x.caps.SourceSetName...)
	if err != nil {
		return nil, err
	}
	kotlin, err := probe.Get[[]string](entry, x.caps.KotlinDirs...)
	if err != nil {
		return nil, err
	}
	resources, err := probe.Get[[]string](entry, x.caps.ResourceDirs...)
	if err != nil {
		return nil, err
	}

	n, hasName := name.Get()
	dirs, hasKotlin := kotlin.Get()
	res, hasResources := resources.Get()
	if !hasName || n == "" || !hasKotlin || !hasResources {
		return nil, nil
	}
	return model.NewSourceSet(n, dirs, res), nil
}
