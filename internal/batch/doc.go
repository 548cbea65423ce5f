// Package batch schedules a digest run as two bounded fan-out stages:
// listing candidates across sources, then processing the combined set.
//
// There is a full barrier between the stages so duplicates can be dropped
// before any work is spent on them. A source that fails to list simply
// contributes nothing, and a candidate that fails to process is tallied in
// the result; the scheduler itself never returns an error.
package batch
