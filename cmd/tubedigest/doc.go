// Package main hosts the tubedigest CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the digest run itself, ledger and
// run-history inspection, configuration scaffolding, and a test email
// command. It centralizes configuration resolution and logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
