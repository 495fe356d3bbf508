// Package probe answers "does this object expose accessor X" for objects
// whose shape is only known at run time, and reads the accessor when it does.
//
// Two kinds of objects are understood:
//
//   - Dynamic objects, which enumerate their own accessors (see Dynamic).
//     Snapshot-backed build objects are of this kind.
//
//   - Plain Go values, whose exported methods are looked up by name through
//     reflection. An accessor is a method with no parameters returning
//     either a value, a value and an error, or a value and a bool.
//
// A missing accessor, or one returning a value that cannot be converted to
// the requested type, yields an absent Optional. An error returned by an
// accessor that does exist is a real failure and is passed to the caller
// untouched. Panics raised inside an accessor are not recovered.
package probe
