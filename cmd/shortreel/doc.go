// Package main hosts the shortreel CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the full pipeline run (generate), run
// history inspection, dependency preflight, notification testing, and
// configuration scaffolding. It centralizes configuration resolution and
// logging setup so subcommands can focus on user experience instead of
// wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
