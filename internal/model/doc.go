// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the value types of a multiplatform project import.
// It is the only thing that crosses the process boundary to the consumer, so
// nothing in here refers back to build-tool objects: every field is a string,
// a slice, or another model value, and the whole tree encodes to JSON.
//
// # Core Concepts
//
//   - SourceSet: a named group of source and resource directories. Source
//     sets are shared; a compilation only refers to them by name.
//
//   - Target: a compile destination for one Platform. It owns its
//     compilations and names the archive it produces.
//
//   - Compilation: one compile unit of a target. It knows its member source
//     sets, its scoped dependencies, its outputs and its compiler arguments.
//
//   - Model: the root. It holds every source set, every target and the
//     extra features read from the extension.
//
// # Construction
//
// Values are built in two phases. Compilations are created before the target
// that owns them exists, so NewTarget binds each compilation to its target
// after the fact. Source set platform, dependencies and test flag are only
// knowable once every target is built; Finalize fills them in. Neither slot
// is exported for writing, and once the builder hands a Model to its caller
// it is not modified again.
package model
