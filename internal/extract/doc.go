// Package extract turns a build-tool project into a model.Model.
//
// Extraction runs in passes over one project:
//
//  1. Source sets are read from the extension's source set container.
//  2. Targets are read together with their compilations. Each compilation
//     is built first, then bound to the target that owns it. Dependencies
//     are resolved per compilation through the buildtool.DependencyResolver.
//  3. The aggregator walks the finished target graph and writes platform,
//     merged dependencies and the test flag back into every source set.
//
// Failures come in two tiers. A missing accessor, a name that does not
// resolve, or a task that cannot be found only drops the unit it affects (a
// source set, a compilation, a target) and extraction continues. An error
// reported by the task registry, the resolver or an accessor aborts the whole
// build; the caller then receives an *ImportError and never a partial model.
package extract
