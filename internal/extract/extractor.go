package extract

import (
	"github.com/vk/mppimport/internal/buildtool"
	"github.com/vk/mppimport/internal/capability"
)

// extractor carries what every pass needs for one project.
type extractor struct {
	caps     *capability.Set
	project  buildtool.Project
	resolver buildtool.DependencyResolver
}

func newExtractor(caps *capability.Set, project buildtool.Project, resolver buildtool.DependencyResolver) *extractor {
	return &extractor{caps: caps, project: project, resolver: resolver}
}
