// Package app contains the core application logic. It wires the task
// registry, the help-aware registrar and the taskfile loader together and
// runs the requested task, decoupled from any specific entrypoint like a CLI.
package app
