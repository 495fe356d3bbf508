package extract

import "github.com/vk/mppimport/internal/model"

// Aggregate writes into every source set what the compilations referencing
// it agree on. It needs the complete target graph:
//
//   - platform is the one platform all referencing compilations share, or
//     common when they disagree;
//   - dependencies are the union of theirs, in compilation order, first
//     occurrence winning;
//   - the source set is a test module only if every referencing
//     compilation is a test compilation.
//
// A source set no compilation references keeps the defaults: common, no
// dependencies, not a test module.
func Aggregate(sourceSets []*model.SourceSet, targets []*model.Target) {
	users := make(map[string][]*model.Compilation, len(sourceSets))
	for _, t := range targets {
		for _, c := range t.Compilations {
			for _, name := range c.SourceSets {
				users[name] = append(users[name], c)
			}
		}
	}

	for _, ss := range sourceSets {
		ss.Finalize(aggregateOf(users[ss.Name]))
	}
}

func aggregateOf(compilations []*model.Compilation) model.Aggregate {
	if len(compilations) == 0 {
		return model.Aggregate{Platform: model.PlatformCommon}
	}

	platform := compilations[0].Platform()
	isTest := true
	var deps model.DependencySet
	for _, c := range compilations {
		if c.Platform() != platform {
			platform = model.PlatformCommon
		}
		isTest = isTest && c.IsTestModule()
		deps.Add(c.Dependencies...)
	}

	return model.Aggregate{
		Platform:     platform,
		Dependencies: deps.Items(),
		IsTestModule: isTest,
	}
}
