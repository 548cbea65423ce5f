// Package postmark delivers digest emails via the Postmark transactional
// email API.
//
// The sender degrades to an erroring implementation when credentials are
// missing so a run can still process videos and record them as done; only
// the final delivery step reports the configuration gap.
package postmark
