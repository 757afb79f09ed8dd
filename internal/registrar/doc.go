// Package registrar decorates the host registry's Register(name, deps, fn)
// with an optional help descriptor, and installs the built-in "help" and
// "default" tasks.
//
// Register accepts the loose call shapes (name, fn), (name, deps, fn) and
// (name, help, deps, fn). Resolve fixes the shape once and returns a
// Registration; Task, TaskWithDeps and TaskWithHelp are the typed
// equivalents for callers that know their shape at compile time.
package registrar
