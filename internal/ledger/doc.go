// Package ledger tracks which videos have completed the pipeline.
//
// The ledger is a single JSON file mapping video IDs to a small persisted
// record. Saves are crash-safe: the previous file is moved to a .backup
// sibling before the new content is written, and restored if the write
// fails. A load never fails the caller; missing or corrupt files simply
// start an empty ledger, trading a re-run of old work for availability.
package ledger
