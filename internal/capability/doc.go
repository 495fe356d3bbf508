// Package capability holds the accessor names the importer probes for,
// grouped into one Set per range of build-tool plugin versions.
//
// Plugin releases add, rename and drop accessors on the objects the importer
// reads. Instead of scattering those names through the extractors, every
// concern (where the source sets live, what the compile task name accessor is
// called, how an archive task reports its file, ...) is declared here as an
// ordered list of aliases. The probe tries them in order and the first
// accessor that exists wins.
//
// During startup the registry is populated and validated so that a set with a
// missing alias list is caught before any project is imported.
package capability
