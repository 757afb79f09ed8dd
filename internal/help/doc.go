// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package help attaches human-readable documentation to tasks and renders it.
//
// # Descriptors
//
// A task's raw help is one of three forms, all implementing task.Descriptor:
//
//   - Literal: a plain message.
//   - Structured: a message plus optional arguments, given either as an
//     ArgList (bare names or full Arg values) or as an ArgMap (name to message).
//   - Computed: a function of the task that produces one of the two forms
//     above. It is evaluated on every render and may not return another
//     Computed.
//
// # Normalization
//
// Normalize turns the raw form into a Help value: the task's registered name,
// the message, its dependencies when it has any, and its arguments, each with
// a non-empty name and a non-nil alias list. The raw descriptor is never
// modified and nothing is cached, so dynamic descriptors always reflect the
// current state of the task.
//
// # Rendering
//
// Renderer prints either a listing of every documented task, sorted by name,
// or the details of one task, as text or as one JSON object per task.
package help
