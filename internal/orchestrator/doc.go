// Package orchestrator ties one digest run together: it drives the batch
// scheduler, merges successful records into the completion ledger, saves
// the ledger, delivers the digest email, and journals the run.
//
// A run never fails partway for item-level problems; everything that
// could go wrong mid-run is logged and tallied instead.
package orchestrator
