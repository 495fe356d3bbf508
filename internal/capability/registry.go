package capability

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/vk/mppimport/internal/ctxlog"
)

type entry struct {
	raw        string
	constraint version.Constraints
	set        *Set
}

// Registry maps plugin version constraints to accessor sets. Lookup walks
// entries in registration order.
type Registry struct {
	entries []entry
	latest  *Set
}

// New creates an empty Registry. latest answers lookups for projects that do
// not report a plugin version.
func New(latest *Set) *Registry {
	return &Registry{latest: latest}
}

// Default returns the registry of every supported plugin line.
func Default() *Registry {
	r := New(Current())
	r.Register("< 1.3.40", Legacy())
	r.Register(">= 1.3.40", Current())
	return r
}

// Register adds a set for a version constraint such as ">= 1.3.40".
func (r *Registry) Register(constraint string, set *Set) {
	for _, e := range r.entries {
		if e.raw == constraint {
			panic(fmt.Sprintf("capability set for constraint '%s' already registered", constraint))
		}
	}
	c, err := version.NewConstraint(constraint)
	if err != nil {
		panic(fmt.Sprintf("invalid capability constraint '%s': %v", constraint, err))
	}
	r.entries = append(r.entries, entry{raw: constraint, constraint: c, set: set})
}

// Lookup returns the set for a plugin version. Constraints are checked
// against the release core of the version, so 1.4-M1 and 1.3.50-eap-5 are
// matched as 1.4.0 and 1.3.50. An empty or unparsable version, or one no
// constraint admits, selects the latest set.
func (r *Registry) Lookup(ctx context.Context, pluginVersion string) *Set {
	logger := ctxlog.FromContext(ctx)

	if strings.TrimSpace(pluginVersion) == "" {
		return r.latest
	}
	v, err := version.NewVersion(pluginVersion)
	if err != nil {
		logger.Debug("Unparsable plugin version; using latest capability set.", "plugin_version", pluginVersion, "error", err)
		return r.latest
	}
	core := v.Core()
	for _, e := range r.entries {
		if e.constraint.Check(core) {
			return e.set
		}
	}
	logger.Debug("No capability set matches plugin version; using latest.", "plugin_version", v.Original())
	return r.latest
}

// Validate checks that every registered set fills each required concern.
func (r *Registry) Validate() error {
	var errs []string
	check := func(label string, s *Set) {
		if s == nil {
			errs = append(errs, fmt.Sprintf("%s: set is nil", label))
			return
		}
		if s.Extension == "" {
			errs = append(errs, fmt.Sprintf("%s: extension name is empty", label))
		}
		req := s.required()
		names := make([]string, 0, len(req))
		for name := range req {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if len(req[name]) == 0 {
				errs = append(errs, fmt.Sprintf("%s: no accessor aliases for '%s'", label, name))
			}
		}
	}

	check("latest", r.latest)
	for _, e := range r.entries {
		check(fmt.Sprintf("constraint '%s'", e.raw), e.set)
	}

	if len(errs) > 0 {
		return fmt.Errorf("capability registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
