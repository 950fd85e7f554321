// Package main hosts the vecalc CLI entrypoint and command graph.
//
// The Cobra-based command tree exposes the container codec (decrypt, encrypt,
// inspect), document validation and normalization, jq queries, JSON Schema
// export, vector encoding and scaling, recipe-driven mixing, and
// configuration scaffolding. It centralizes configuration resolution and
// per-invocation structured logging so subcommands can focus on rendering.
//
// Keep this package lean: codec, validation and mixing semantics live in the
// internal packages; commands only read inputs, call them, and render
// results. Exit codes follow faults.ExitCode.
package main
