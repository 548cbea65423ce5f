// Package runlog keeps a SQLite journal of digest runs so past activity
// can be inspected from the CLI. Writes are best effort; a failed journal
// append never blocks a run.
package runlog
